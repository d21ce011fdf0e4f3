package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"gradebook/internal/config"
	"gradebook/internal/db"
	"gradebook/internal/logger"
	"gradebook/internal/ranking"
	"gradebook/internal/repository"
	"gradebook/internal/service"
)

func main() {
	top := flag.Int("top", 0, "only print the n best students (0 prints everyone)")
	threshold := flag.Float64("threshold", 60, "highlight students averaging below this score")
	flag.Parse()

	cfg := config.Load()
	logger.InitFromDebug(cfg.Debug)

	gormDB, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	reports := service.NewReportService(repository.NewStudentRepository(gormDB))
	ctx := context.Background()

	var ranked []ranking.Ranked
	if *top > 0 {
		ranked, err = reports.Top(ctx, *top)
	} else {
		ranked, err = reports.Report(ctx)
	}
	if err != nil {
		color.Red("Error building ranking: %v", err)
		os.Exit(1)
	}

	averages, err := reports.SubjectAverages(ctx)
	if err != nil {
		color.Red("Error computing subject averages: %v", err)
		os.Exit(1)
	}

	displayRanking(ranked, *threshold)
	displaySubjectAverages(averages)
}

func displayRanking(ranked []ranking.Ranked, threshold float64) {
	color.Yellow("\nStudent Ranking")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "ID", "Name", "Average"})

	red := color.New(color.FgRed).SprintFunc()
	below := 0
	for _, r := range ranked {
		avg := fmt.Sprintf("%.2f", r.AverageScore)
		if r.AverageScore < threshold {
			avg = red(avg)
			below++
		}
		table.Append([]string{
			fmt.Sprintf("%d", r.Rank),
			fmt.Sprintf("%d", r.ID),
			r.Name,
			avg,
		})
	}

	table.Render()
	if below > 0 {
		color.Red("%d student(s) below %.2f", below, threshold)
	}
}

func displaySubjectAverages(averages []ranking.SubjectAverage) {
	color.Yellow("\nAverage Scores by Subject")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Subject", "Average Score"})

	for _, a := range averages {
		table.Append([]string{
			a.Subject,
			fmt.Sprintf("%.2f", a.Average),
		})
	}

	table.Render()
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfg2006/superstore-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/superstore-dashboard/infrastructure/repository"
	"github.com/vfg2006/superstore-dashboard/internal/config"
	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/report"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/aggregating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/filtering"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
	"github.com/vfg2006/superstore-dashboard/pkg/utils"
)

var (
	input      string
	outDir     string
	regions    []string
	states     []string
	cities     []string
	startDate  string
	endDate    string
	filterMode string
	metric     string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "gera os CSVs do dashboard sem subir a API",
	Long: `Carrega o dataset, aplica os filtros e escreve Category.csv, Region.csv,
TimeSeries.csv e Data.csv no diretório de saída.

Sem --input o dataset padrão configurado para a API é usado (arquivo ou tabela).`,
	Example: `  # Relatório do dataset padrão
  $ report -o ./out

  # Apenas a região West em 2016, com os dois filtros combinados
  $ report -i Superstore.xlsx -r West --start 2016-01-01 --end 2016-12-31 --mode intersect`,
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	rootCmd.Flags().StringVarP(&input, "input", "i", "", "arquivo csv, xls ou xlsx")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", ".", "diretório de saída")
	rootCmd.Flags().StringSliceVarP(&regions, "region", "r", nil, "regiões (repetível)")
	rootCmd.Flags().StringSliceVarP(&states, "state", "s", nil, "estados (repetível)")
	rootCmd.Flags().StringSliceVarP(&cities, "city", "c", nil, "cidades (repetível)")
	rootCmd.Flags().StringVar(&startDate, "start", "", "data inicial YYYY-MM-DD")
	rootCmd.Flags().StringVar(&endDate, "end", "", "data final YYYY-MM-DD")
	rootCmd.Flags().StringVar(&filterMode, "mode", "", "parity ou intersect (padrão: FILTER_MODE)")
	rootCmd.Flags().StringVar(&metric, "metric", "", "coluna numérica da série temporal")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "tempo máximo de execução")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("argumento inesperado: %s", args[0])
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	selection, err := parseSelection()
	if err != nil {
		return err
	}

	mode := domain.FilterMode(cfg.Pipeline.FilterMode)
	if filterMode != "" {
		mode = domain.FilterMode(filterMode)
	}
	if !mode.Valid() {
		return fmt.Errorf("modo de filtro inválido: %s", mode)
	}

	session := &domain.SessionState{
		ID:        "report",
		Selection: selection,
	}

	var defaultSource loading.DefaultSource
	switch {
	case input != "":
		session.Upload, err = report.ReadUpload(input)
		if err != nil {
			return err
		}
	case cfg.UseDatabase():
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}
		defer conn.Close()
		defaultSource = loading.NewTableSource(cfg.Dataset.Table, repository.NewDatasetTableRepository(conn))
	default:
		defaultSource = loading.NewFileSource(cfg.Dataset.DefaultPath)
	}

	service := dashboard.NewService(
		repository.NewSessionRepository(),
		loading.NewService(defaultSource),
		filtering.NewEngine(mode),
		aggregating.NewService(aggregating.Aggregate(cfg.Pipeline.PivotAggregate)),
		nil,
	)

	// as demais métricas ficam com os padrões do dataset
	if metric != "" {
		if _, err := service.UpdateSelection(ctx, session, selection, domain.MetricSelection{TimeSeries: metric}); err != nil {
			return err
		}
	}

	result, err := report.Generate(ctx, service, session, outDir)
	if err != nil {
		return err
	}

	for _, path := range result.Written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	for name, err := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s não gerado: %v\n", name, err)
	}
	return nil
}

func parseSelection() (domain.FilterSelection, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return domain.FilterSelection{}, fmt.Errorf("--start: %w", err)
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return domain.FilterSelection{}, fmt.Errorf("--end: %w", err)
	}

	return domain.FilterSelection{
		Regions: regions,
		States:  states,
		Cities:  cities,
		Start:   start,
		End:     end,
	}, nil
}

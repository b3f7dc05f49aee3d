package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/superstore-dashboard/infrastructure/repository"
	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/aggregating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/exporting"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/filtering"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
	"github.com/vfg2006/superstore-dashboard/pkg/metrics"
)

// Etapas do pipeline usadas nos diagnósticos
const (
	StageLoad    = "load"
	StageFilter  = "filter"
	StageMetrics = "metrics"
)

// Service é o ponto de entrada único do dashboard: cada chamada refaz carga, filtro e agregação
type Service interface {
	Build(ctx context.Context, session *domain.SessionState) (*domain.DashboardView, error)
	Filters(ctx context.Context, session *domain.SessionState) (*domain.FiltersView, error)
	UpdateSelection(ctx context.Context, session *domain.SessionState, selection domain.FilterSelection, metrics domain.MetricSelection) (*domain.DashboardView, error)
	SetUpload(ctx context.Context, session *domain.SessionState, upload *domain.UploadedFile) (*domain.DashboardView, error)
	ClearUpload(ctx context.Context, session *domain.SessionState) (*domain.DashboardView, error)
	Download(ctx context.Context, session *domain.SessionState, name string) (*File, error)
}

// File é um download pronto para ser enviado
type File struct {
	Name    string
	Content []byte
}

type service struct {
	sessions   repository.SessionRepository
	loader     loading.Loader
	engine     filtering.Engine
	aggregator aggregating.Service
	collectors *metrics.Collectors
	now        func() time.Time
}

func NewService(
	sessions repository.SessionRepository,
	loader loading.Loader,
	engine filtering.Engine,
	aggregator aggregating.Service,
	collectors *metrics.Collectors,
) Service {
	return &service{
		sessions:   sessions,
		loader:     loader,
		engine:     engine,
		aggregator: aggregator,
		collectors: collectors,
		now:        time.Now,
	}
}

// run guarda os resultados intermediários de uma execução
type run struct {
	dataset     *domain.Dataset
	source      string
	name        string
	loadErr     error
	filter      filtering.FilterResult
	metrics     domain.MetricSelection
	metricsErr  error
	tables      map[string]*domain.Table
	stageErrs   map[string]error
	diagnostics []domain.Diagnostic
}

func (s *service) Build(ctx context.Context, session *domain.SessionState) (*domain.DashboardView, error) {
	r := s.execute(ctx, session.Upload, session.Selection, session.Metrics)
	return r.view(), nil
}

func (s *service) Filters(ctx context.Context, session *domain.SessionState) (*domain.FiltersView, error) {
	r := s.prepare(ctx, session.Upload, session.Selection, session.Metrics)

	return &domain.FiltersView{
		FilterMode:  r.filter.Mode,
		Selection:   r.filter.Selection,
		Options:     r.filter.Options,
		Metrics:     r.metrics,
		Numeric:     r.dataset.NumericColumns(),
		Diagnostics: r.diagnostics,
	}, nil
}

// UpdateSelection troca a seleção da sessão. Métricas vazias mantêm o valor guardado na
// sessão; uma métrica que não é numérica recusa a seleção inteira e nada é salvo.
func (s *service) UpdateSelection(ctx context.Context, session *domain.SessionState, selection domain.FilterSelection, metricSelection domain.MetricSelection) (*domain.DashboardView, error) {
	stored := session.Metrics
	if stored.IsZero() {
		// sessão ainda não inicializada: os padrões do dataset valem como valor guardado
		stored = s.prepare(ctx, session.Upload, session.Selection, stored).metrics
	}

	r := s.execute(ctx, session.Upload, selection, metricSelection.Or(stored))
	if r.metricsErr != nil {
		return nil, newPipelineError(aggregating.ErrInvalidColumn, apiErrors.ErrInvalidColumn, StageMetrics, r.metricsErr.Error())
	}

	session.Selection = selection
	session.Metrics = r.metrics
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{"rows": r.filter.Filtered.Len()}).Debug("dashboard: seleção atualizada")
	return r.view(), nil
}

// SetUpload troca o dataset da sessão. A seleção anterior é descartada porque as
// opções e as colunas numéricas dependem do arquivo.
func (s *service) SetUpload(ctx context.Context, session *domain.SessionState, upload *domain.UploadedFile) (*domain.DashboardView, error) {
	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = s.now()
	}

	session.Upload = upload
	session.Selection = domain.FilterSelection{}
	session.Metrics = domain.MetricSelection{}

	r := s.execute(ctx, session.Upload, session.Selection, session.Metrics)
	if r.loadErr == nil && r.metricsErr == nil {
		session.Metrics = r.metrics
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{"source": upload.Name, "rows": r.dataset.Len()}).Info("dashboard: arquivo enviado")
	return r.view(), nil
}

func (s *service) ClearUpload(ctx context.Context, session *domain.SessionState) (*domain.DashboardView, error) {
	session.Upload = nil
	session.Selection = domain.FilterSelection{}
	session.Metrics = domain.MetricSelection{}

	r := s.execute(ctx, nil, session.Selection, session.Metrics)
	if r.loadErr == nil && r.metricsErr == nil {
		session.Metrics = r.metrics
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return r.view(), nil
}

// Download gera um dos arquivos CSV. Data.csv sai do dataset restrito ao intervalo de
// datas; os demais saem das tabelas agregadas da seleção atual.
func (s *service) Download(ctx context.Context, session *domain.SessionState, name string) (*File, error) {
	download, err := exporting.LookupDownload(name)
	if err != nil {
		return nil, newPipelineError(err, apiErrors.ErrUnknownDownload, "export", name)
	}

	r := s.execute(ctx, session.Upload, session.Selection, session.Metrics)
	if r.loadErr != nil {
		return nil, r.loadErr
	}

	var table *domain.Table
	if download.Table == domain.TableData {
		table = aggregating.DataTable(r.filter.DateFiltered)
	} else {
		if stageErr, failed := r.stageErrs[download.Table]; failed {
			return nil, stageErr
		}
		table = r.tables[download.Table]
	}
	if table == nil {
		return nil, newPipelineError(ErrStageSkipped, apiErrors.ErrSchema, download.Table, "")
	}

	content, err := exporting.ToDelimitedText(table)
	if err != nil {
		return nil, newPipelineError(err, apiErrors.ErrInternalServer, "export", download.FileName)
	}

	log.ForContext(ctx).WithFields(log.Fields{"rows": table.Len(), "stage": download.Name}).Debug("dashboard: download gerado")
	return &File{Name: download.FileName, Content: content}, nil
}

func (s *service) save(ctx context.Context, session *domain.SessionState) error {
	if err := s.sessions.Save(ctx, session); err != nil {
		log.ForContext(ctx).WithError(err).Error("dashboard: erro ao salvar sessão")
		return newPipelineError(ErrSessionStore, apiErrors.ErrInternalServer, "session", err.Error())
	}
	return nil
}

// prepare carrega, filtra e valida as métricas, sem agregar. Os padrões só são
// aplicados a uma seleção de métricas ainda não inicializada.
func (s *service) prepare(ctx context.Context, upload *domain.UploadedFile, selection domain.FilterSelection, metricSelection domain.MetricSelection) *run {
	r := &run{
		source:      loading.SourceDefault,
		name:        s.loader.DescribeDefault(),
		diagnostics: make([]domain.Diagnostic, 0),
		stageErrs:   make(map[string]error),
	}
	if upload != nil {
		r.source = loading.SourceUpload
		r.name = upload.Name
	}

	dataset, err := s.loader.Load(ctx, upload)
	if dataset == nil {
		dataset = domain.EmptyDataset()
	}
	r.dataset = dataset
	if err != nil {
		r.loadErr = err
		r.addError(StageLoad, err)
		s.collectors.LoadFailed(codeOf(err, apiErrors.ErrLoadFailed))
	}

	r.filter = s.engine.Apply(dataset, selection)

	r.metrics = metricSelection
	if len(dataset.Columns) > 0 {
		if metricSelection.IsZero() {
			r.metrics = aggregating.ResolveMetrics(dataset, metricSelection)
		}
		if err := aggregating.ValidateMetrics(dataset, r.metrics); err != nil {
			r.metricsErr = err
			r.diagnostics = append(r.diagnostics, domain.Diagnostic{
				Code:     apiErrors.ErrInvalidColumn,
				Severity: domain.SeverityWarning,
				Stage:    StageMetrics,
				Message:  err.Error(),
			})
		}

		if r.filter.Filtered.IsEmpty() {
			r.diagnostics = append(r.diagnostics, domain.Diagnostic{
				Code:     apiErrors.ErrEmptyResult,
				Severity: domain.SeverityWarning,
				Stage:    StageFilter,
				Message:  ErrEmptyResult.Error(),
			})
		}

		if r.filter.Mode == domain.FilterModeParity && r.filter.DateFiltered.Len() != dataset.Len() {
			r.diagnostics = append(r.diagnostics, domain.Diagnostic{
				Code:     apiErrors.ErrFilterAsymmetry,
				Severity: domain.SeverityInfo,
				Stage:    StageFilter,
				Message:  ErrFilterAsymmetry.Error() + ": o período escolhido vale apenas para o download Data.csv",
			})
		}
	}

	return r
}

// execute roda o pipeline completo. Falhas viram diagnósticos e a execução segue
// com o que puder ser calculado.
func (s *service) execute(ctx context.Context, upload *domain.UploadedFile, selection domain.FilterSelection, metricSelection domain.MetricSelection) *run {
	start := s.now()
	r := s.prepare(ctx, upload, selection, metricSelection)

	tables, errs := s.aggregator.Aggregate(aggregating.Input{
		Filtered: r.filter.Filtered,
		Full:     r.dataset,
		Metrics:  r.metrics,
	})
	r.tables = tables
	for _, err := range errs {
		stage := "aggregate"
		var stageErr *aggregating.StageError
		if errors.As(err, &stageErr) {
			stage = stageErr.Stage
		}
		r.stageErrs[stage] = err
		r.addError(stage, err)
	}

	status := metrics.StatusOK
	switch {
	case r.loadErr != nil:
		status = metrics.StatusFailed
	case len(errs) > 0 || r.metricsErr != nil:
		status = metrics.StatusDegraded
	}
	s.collectors.ObservePipeline(string(r.filter.Mode), status, s.now().Sub(start))

	log.ForContext(ctx).WithFields(log.Fields{
		"source": r.name,
		"rows":   r.filter.Filtered.Len(),
		"status": status,
	}).Debug("dashboard: pipeline executado")

	return r
}

func (r *run) addError(stage string, err error) {
	severity := domain.SeverityWarning
	if stage == StageLoad {
		severity = domain.SeverityError
	}

	r.diagnostics = append(r.diagnostics, domain.Diagnostic{
		Code:     codeOf(err, apiErrors.ErrInternalServer),
		Severity: severity,
		Stage:    stage,
		Message:  err.Error(),
	})
}

func (r *run) view() *domain.DashboardView {
	return &domain.DashboardView{
		Dataset: domain.DatasetSummary{
			Source:  r.source,
			Name:    r.name,
			Rows:    r.dataset.Len(),
			Columns: r.dataset.Columns,
			Numeric: r.dataset.NumericColumns(),
		},
		FilterMode:    r.filter.Mode,
		Selection:     r.filter.Selection,
		Metrics:       r.metrics,
		Options:       r.filter.Options,
		FilteredRows:  r.filter.Filtered.Len(),
		DateRangeRows: r.filter.DateFiltered.Len(),
		Tables:        r.tables,
		Diagnostics:   r.diagnostics,
	}
}

// codeOf extrai o código de API dos erros tipados do pipeline
func codeOf(err error, fallback string) string {
	var loadErr *loading.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var stageErr *aggregating.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Code
	}
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Code
	}
	return fallback
}

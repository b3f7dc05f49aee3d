package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/superstore-dashboard/infrastructure/repository"
	repositoryMocks "github.com/vfg2006/superstore-dashboard/infrastructure/repository/mocks"
	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/aggregating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/exporting"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/filtering"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
	loadingMocks "github.com/vfg2006/superstore-dashboard/internal/usecases/loading/mocks"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/metrics"
)

const ordersCSV = `Order Date,Region,State,City,Segment,Category,Sub-Category,Sales,Quantity,Profit
2016-11-08,South,Kentucky,Henderson,Consumer,Furniture,Bookcases,261.96,2,41.9136
2016-06-12,West,California,Los Angeles,Corporate,Office Supplies,Labels,14.62,2,6.8714
2015-10-11,East,New York,New York City,Consumer,Technology,Phones,100,1,10
2017-01-05,West,Washington,Seattle,Home Office,Furniture,Chairs,50,3,-5
`

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ordersDataset(t *testing.T, content string) *domain.Dataset {
	t.Helper()

	dataset, err := loading.LoadUpload(&domain.UploadedFile{Name: "orders.csv", Content: []byte(content)})
	require.NoError(t, err)
	return dataset
}

func mockLoader(ctrl *gomock.Controller, dataset *domain.Dataset, err error) *loadingMocks.MockLoader {
	loader := loadingMocks.NewMockLoader(ctrl)
	loader.EXPECT().DescribeDefault().Return("Sample - Superstore.xls").AnyTimes()
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(dataset, err).AnyTimes()
	return loader
}

func newTestService(sessions repository.SessionRepository, loader loading.Loader, mode domain.FilterMode) Service {
	return NewService(sessions, loader, filtering.NewEngine(mode), aggregating.NewService(aggregating.AggregateSum), metrics.New())
}

func newSession(t *testing.T, sessions repository.SessionRepository) *domain.SessionState {
	t.Helper()

	session := &domain.SessionState{ID: "abc", User: "admin", Authenticated: true}
	require.NoError(t, sessions.Save(context.Background(), session))
	return session
}

func diagnosticCodes(diagnostics []domain.Diagnostic) []string {
	codes := make([]string, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		codes = append(codes, diagnostic.Code)
	}
	return codes
}

func TestBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dataset := ordersDataset(t, ordersCSV)

	tests := []struct {
		name          string
		mode          domain.FilterMode
		selection     domain.FilterSelection
		filteredRows  int
		dateRangeRows int
		categories    []any
		diagnostics   []string
	}{
		{
			name:          "sem filtros",
			mode:          domain.FilterModeParity,
			filteredRows:  4,
			dateRangeRows: 4,
			categories:    []any{"Furniture", "Office Supplies", "Technology"},
			diagnostics:   []string{},
		},
		{
			name:          "região West",
			mode:          domain.FilterModeParity,
			selection:     domain.FilterSelection{Regions: []string{"West"}},
			filteredRows:  2,
			dateRangeRows: 4,
			categories:    []any{"Office Supplies", "Furniture"},
			diagnostics:   []string{},
		},
		{
			name:          "região inexistente",
			mode:          domain.FilterModeParity,
			selection:     domain.FilterSelection{Regions: []string{"Nowhere"}},
			filteredRows:  0,
			dateRangeRows: 4,
			categories:    []any{},
			diagnostics:   []string{apiErrors.ErrEmptyResult},
		},
		{
			name:          "intervalo de datas no modo parity não filtra os gráficos",
			mode:          domain.FilterModeParity,
			selection:     domain.FilterSelection{Start: day(2016, 1, 1), End: day(2016, 12, 31)},
			filteredRows:  4,
			dateRangeRows: 2,
			categories:    []any{"Furniture", "Office Supplies", "Technology"},
			diagnostics:   []string{apiErrors.ErrFilterAsymmetry},
		},
		{
			name:          "intervalo de datas no modo intersect",
			mode:          domain.FilterModeIntersect,
			selection:     domain.FilterSelection{Start: day(2016, 1, 1), End: day(2016, 12, 31)},
			filteredRows:  2,
			dateRangeRows: 2,
			categories:    []any{"Furniture", "Office Supplies"},
			diagnostics:   []string{},
		},
		{
			name:          "intervalo invertido",
			mode:          domain.FilterModeIntersect,
			selection:     domain.FilterSelection{Start: day(2017, 1, 1), End: day(2016, 1, 1)},
			filteredRows:  0,
			dateRangeRows: 0,
			categories:    []any{},
			diagnostics:   []string{apiErrors.ErrEmptyResult},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := repository.NewSessionRepository()
			service := newTestService(sessions, mockLoader(ctrl, dataset, nil), tt.mode)
			session := newSession(t, sessions)
			session.Selection = tt.selection

			view, err := service.Build(context.Background(), session)
			require.NoError(t, err)

			assert.Equal(t, tt.mode, view.FilterMode)
			assert.Equal(t, tt.filteredRows, view.FilteredRows)
			assert.Equal(t, tt.dateRangeRows, view.DateRangeRows)
			assert.Equal(t, tt.diagnostics, diagnosticCodes(view.Diagnostics))
			assert.Equal(t, tt.categories, view.Tables[domain.TableCategory].ColumnValues(domain.ColumnCategory))
			assert.Len(t, view.Tables, 9)

			assert.Equal(t, loading.SourceDefault, view.Dataset.Source)
			assert.Equal(t, "Sample - Superstore.xls", view.Dataset.Name)
			assert.Equal(t, 4, view.Dataset.Rows)
			assert.Equal(t, domain.MetricSelection{
				TimeSeries:  domain.ColumnSales,
				ScatterX:    domain.ColumnSales,
				ScatterY:    domain.ColumnProfit,
				ScatterSize: domain.ColumnQuantity,
			}, view.Metrics)
		})
	}
}

func TestBuild_FalhaNaCarga(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loadErr := &loading.LoadError{
		Err:    loading.ErrResourceNotFound,
		Code:   apiErrors.ErrResourceNotFound,
		Source: "Sample - Superstore.xls",
	}

	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, domain.EmptyDataset(), loadErr), domain.FilterModeParity)

	view, err := service.Build(context.Background(), newSession(t, sessions))
	require.NoError(t, err)

	require.Len(t, view.Diagnostics, 1)
	assert.Equal(t, apiErrors.ErrResourceNotFound, view.Diagnostics[0].Code)
	assert.Equal(t, domain.SeverityError, view.Diagnostics[0].Severity)
	assert.Equal(t, StageLoad, view.Diagnostics[0].Stage)
	assert.Equal(t, 0, view.Dataset.Rows)
	for name, table := range view.Tables {
		assert.Zero(t, table.Len(), name)
	}
}

func TestBuild_EstagioSemColuna(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	withoutSegment := strings.ReplaceAll(ordersCSV, "Segment,", "Kind,")
	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, withoutSegment), nil), domain.FilterModeParity)

	view, err := service.Build(context.Background(), newSession(t, sessions))
	require.NoError(t, err)

	require.Len(t, view.Diagnostics, 1)
	assert.Equal(t, apiErrors.ErrSchema, view.Diagnostics[0].Code)
	assert.Equal(t, domain.TableSegment, view.Diagnostics[0].Stage)
	assert.NotContains(t, view.Tables, domain.TableSegment)
	assert.Contains(t, view.Tables, domain.TableCategory)
}

func TestFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, ordersCSV), nil), domain.FilterModeParity)
	session := newSession(t, sessions)
	session.Selection = domain.FilterSelection{Regions: []string{"West"}}

	view, err := service.Filters(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, []string{"South", "West", "East"}, view.Options.Regions)
	assert.Equal(t, []string{"California", "Washington"}, view.Options.States)
	assert.Equal(t, []string{"Los Angeles", "Seattle"}, view.Options.Cities)
	require.NotNil(t, view.Options.Bounds)
	assert.Equal(t, day(2015, 10, 11), view.Options.Bounds.Min)
	assert.Equal(t, day(2017, 1, 5), view.Options.Bounds.Max)
	assert.Equal(t, day(2015, 10, 11), view.Selection.Start)
	assert.Equal(t, []string{"Sales", "Quantity", "Profit"}, view.Numeric)
}

func TestUpdateSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, ordersCSV), nil), domain.FilterModeParity)
	session := newSession(t, sessions)

	view, err := service.UpdateSelection(ctx, session,
		domain.FilterSelection{Regions: []string{"West"}},
		domain.MetricSelection{TimeSeries: domain.ColumnProfit},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, view.FilteredRows)
	assert.Equal(t, domain.ColumnProfit, view.Tables[domain.TableTimeSeries].Metric)

	stored, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"West"}, stored.Selection.Regions)
	assert.Equal(t, domain.MetricSelection{
		TimeSeries:  domain.ColumnProfit,
		ScatterX:    domain.ColumnSales,
		ScatterY:    domain.ColumnProfit,
		ScatterSize: domain.ColumnQuantity,
	}, stored.Metrics)

	t.Run("métrica não numérica é recusada", func(t *testing.T) {
		_, err := service.UpdateSelection(ctx, session,
			domain.FilterSelection{Regions: []string{"East"}},
			domain.MetricSelection{TimeSeries: domain.ColumnRegion},
		)
		assert.ErrorIs(t, err, aggregating.ErrInvalidColumn)

		var pipelineErr *PipelineError
		require.True(t, errors.As(err, &pipelineErr))
		assert.Equal(t, apiErrors.ErrInvalidColumn, pipelineErr.Code)

		stored, err := sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"West"}, stored.Selection.Regions)
	})
}

func TestUpdateSelection_FalhaAoSalvar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := repositoryMocks.NewMockSessionRepository(ctrl)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("store unavailable"))

	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, ordersCSV), nil), domain.FilterModeParity)

	_, err := service.UpdateSelection(context.Background(), &domain.SessionState{ID: "abc"}, domain.FilterSelection{}, domain.MetricSelection{})
	assert.ErrorIs(t, err, ErrSessionStore)
}

func TestUpdateSelection_MetricaVaziaMantemValorGuardado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, ordersCSV), nil), domain.FilterModeParity)
	session := newSession(t, sessions)
	session.Metrics = domain.MetricSelection{
		TimeSeries:  domain.ColumnProfit,
		ScatterX:    domain.ColumnQuantity,
		ScatterY:    domain.ColumnProfit,
		ScatterSize: domain.ColumnSales,
	}
	require.NoError(t, sessions.Save(ctx, session))

	view, err := service.UpdateSelection(ctx, session,
		domain.FilterSelection{Regions: []string{"West"}},
		domain.MetricSelection{ScatterY: domain.ColumnSales},
	)
	require.NoError(t, err)

	expected := domain.MetricSelection{
		TimeSeries:  domain.ColumnProfit,
		ScatterX:    domain.ColumnQuantity,
		ScatterY:    domain.ColumnSales,
		ScatterSize: domain.ColumnSales,
	}
	assert.Equal(t, expected, view.Metrics)
	assert.Equal(t, domain.ColumnProfit, view.Tables[domain.TableTimeSeries].Metric)
	assert.Equal(t, []string{domain.ColumnQuantity, domain.ColumnSales, domain.ColumnSales}, view.Tables[domain.TableScatter].Columns)

	stored, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, stored.Metrics)

	t.Run("seleção sem métricas não volta aos padrões", func(t *testing.T) {
		view, err := service.UpdateSelection(ctx, session, domain.FilterSelection{}, domain.MetricSelection{})
		require.NoError(t, err)
		assert.Equal(t, expected, view.Metrics)
	})
}

func TestBuild_MetricaGuardadaInvalida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, ordersCSV), nil), domain.FilterModeParity)
	session := newSession(t, sessions)
	session.Metrics = domain.MetricSelection{
		TimeSeries:  "Discount",
		ScatterX:    domain.ColumnSales,
		ScatterY:    domain.ColumnProfit,
		ScatterSize: domain.ColumnQuantity,
	}

	view, err := service.Build(context.Background(), session)
	require.NoError(t, err)

	assert.Equal(t, "Discount", view.Metrics.TimeSeries)
	assert.Equal(t, []string{apiErrors.ErrInvalidColumn, apiErrors.ErrInvalidColumn}, diagnosticCodes(view.Diagnostics))
	assert.Equal(t, StageMetrics, view.Diagnostics[0].Stage)
	assert.Equal(t, domain.TableTimeSeries, view.Diagnostics[1].Stage)
	assert.NotContains(t, view.Tables, domain.TableTimeSeries)
	assert.Contains(t, view.Tables, domain.TableScatter)
}

func TestBuild_ArquivoSoComCabecalho(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	header := strings.SplitN(ordersCSV, "\n", 2)[0] + "\n"
	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, header), nil), domain.FilterModeParity)

	view, err := service.Build(context.Background(), newSession(t, sessions))
	require.NoError(t, err)

	assert.Equal(t, []string{apiErrors.ErrEmptyResult}, diagnosticCodes(view.Diagnostics))
	assert.Equal(t, 0, view.Dataset.Rows)
	assert.Equal(t, []string{"Sales", "Quantity", "Profit"}, view.Dataset.Numeric)
	assert.Equal(t, domain.ColumnSales, view.Metrics.TimeSeries)
	require.Len(t, view.Tables, 9)
	for name, table := range view.Tables {
		assert.Zero(t, table.Len(), name)
	}
}

func TestSetUploadAndClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessions := repository.NewSessionRepository()
	upload := &domain.UploadedFile{Name: "orders.csv", Size: len(ordersCSV), Content: []byte(ordersCSV)}
	defaultDataset := ordersDataset(t, ordersCSV).Head(1)

	loader := loadingMocks.NewMockLoader(ctrl)
	loader.EXPECT().DescribeDefault().Return("Sample - Superstore.xls").AnyTimes()
	loader.EXPECT().Load(gomock.Any(), upload).Return(ordersDataset(t, ordersCSV), nil)
	loader.EXPECT().Load(gomock.Any(), gomock.Nil()).Return(defaultDataset, nil)

	service := newTestService(sessions, loader, domain.FilterModeParity)
	session := newSession(t, sessions)
	session.Selection = domain.FilterSelection{Regions: []string{"Central"}}

	view, err := service.SetUpload(ctx, session, upload)
	require.NoError(t, err)
	assert.Equal(t, loading.SourceUpload, view.Dataset.Source)
	assert.Equal(t, "orders.csv", view.Dataset.Name)
	assert.Equal(t, 4, view.FilteredRows)

	stored, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Upload)
	assert.Equal(t, "orders.csv", stored.Upload.Name)
	assert.False(t, stored.Upload.UploadedAt.IsZero())
	assert.Empty(t, stored.Selection.Regions)
	assert.Equal(t, domain.ColumnSales, stored.Metrics.TimeSeries)

	view, err = service.ClearUpload(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, loading.SourceDefault, view.Dataset.Source)
	assert.Equal(t, 1, view.Dataset.Rows)

	stored, err = sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Upload)
}

func TestSetUpload_FormatoNaoSuportado(t *testing.T) {
	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, loading.NewService(nil), domain.FilterModeParity)
	session := newSession(t, sessions)

	view, err := service.SetUpload(context.Background(), session, &domain.UploadedFile{Name: "orders.txt", Content: []byte(ordersCSV)})
	require.NoError(t, err)

	require.Len(t, view.Diagnostics, 1)
	assert.Equal(t, apiErrors.ErrUnsupportedFormat, view.Diagnostics[0].Code)
	assert.Equal(t, 0, view.Dataset.Rows)

	stored, err := sessions.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "orders.txt", stored.Upload.Name)
	assert.True(t, stored.Metrics.IsZero())
}

func TestDownload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sessions := repository.NewSessionRepository()
	service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, ordersCSV), nil), domain.FilterModeParity)
	session := newSession(t, sessions)
	session.Selection = domain.FilterSelection{
		Regions: []string{"West"},
		Start:   day(2016, 1, 1),
		End:     day(2016, 12, 31),
	}

	file, err := service.Download(ctx, session, "category")
	require.NoError(t, err)
	assert.Equal(t, "Category.csv", file.Name)
	assert.Equal(t, "Category,Sales\nOffice Supplies,14.62\nFurniture,50\n", string(file.Content))

	file, err = service.Download(ctx, session, "region")
	require.NoError(t, err)
	assert.Equal(t, "Region,Sales\nWest,64.62\n", string(file.Content))

	file, err = service.Download(ctx, session, "data")
	require.NoError(t, err)
	assert.Equal(t, "Data.csv", file.Name)
	lines := strings.Split(strings.TrimSuffix(string(file.Content), "\n"), "\n")
	require.Len(t, lines, 3, "o intervalo de datas vale para o dataset completo")
	assert.True(t, strings.HasPrefix(lines[0], "Order Date,Region,State"))
	assert.True(t, strings.HasPrefix(lines[1], "2016-11-08,South"))
	assert.True(t, strings.HasPrefix(lines[2], "2016-06-12,West"))

	again, err := service.Download(ctx, session, "data")
	require.NoError(t, err)
	assert.Equal(t, file.Content, again.Content)

	_, err = service.Download(ctx, session, "pivot")
	assert.ErrorIs(t, err, exporting.ErrUnknownDownload)
}

func TestDownload_Erros(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("falha na carga", func(t *testing.T) {
		loadErr := &loading.LoadError{Err: loading.ErrLoad, Code: apiErrors.ErrLoadFailed, Source: "orders.xlsx"}
		sessions := repository.NewSessionRepository()
		service := newTestService(sessions, mockLoader(ctrl, domain.EmptyDataset(), loadErr), domain.FilterModeParity)

		_, err := service.Download(context.Background(), newSession(t, sessions), "category")
		assert.ErrorIs(t, err, loading.ErrLoad)
	})

	t.Run("estágio indisponível", func(t *testing.T) {
		withoutCategory := strings.ReplaceAll(ordersCSV, ",Category,", ",Kind,")
		sessions := repository.NewSessionRepository()
		service := newTestService(sessions, mockLoader(ctrl, ordersDataset(t, withoutCategory), nil), domain.FilterModeParity)

		_, err := service.Download(context.Background(), newSession(t, sessions), "category")
		assert.ErrorIs(t, err, aggregating.ErrSchema)
		assert.Equal(t, apiErrors.ErrSchema, codeOf(err, ""))
	})
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vfg2006/superstore-dashboard/infrastructure/database/postgres"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// DatasetTableRepository lê o dataset padrão de uma tabela do Postgres
type DatasetTableRepository interface {
	ReadTable(ctx context.Context, table string) ([]string, [][]string, error)
}

type datasetTableRepository struct {
	conn postgres.Queryer
}

func NewDatasetTableRepository(conn postgres.Queryer) DatasetTableRepository {
	return &datasetTableRepository{
		conn: conn,
	}
}

// ReadTable devolve todas as colunas da tabela como texto, na ordem física do banco.
// Valores nulos viram texto vazio.
func (r *datasetTableRepository) ReadTable(ctx context.Context, table string) ([]string, [][]string, error) {
	query, args, err := buildTableQuery(table)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "erro ao consultar tabela %s", table)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao ler colunas")
	}

	records := make([][]string, 0)
	for rows.Next() {
		values := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, nil, errors.Wrapf(err, "erro ao ler linha %d", len(records)+1)
		}

		record := make([]string, len(header))
		for i, value := range values {
			record[i] = value.String
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "erro ao percorrer linhas")
	}

	return header, records, nil
}

func buildTableQuery(table string) (string, []any, error) {
	if !tableName.MatchString(table) {
		return "", nil, fmt.Errorf("nome de tabela inválido: %q", table)
	}

	return squirrel.
		Select("*").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/vfg2006/superstore-dashboard/internal/config"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
)

// Carrega o arquivo do dataset padrão (DATASET_DEFAULT_PATH ou o primeiro argumento)
// na tabela DATASET_TABLE. Todas as colunas são TEXT: a tipagem é feita pelo loader.

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando carga do dataset...")
}

// quoteTable aceita "tabela" ou "schema.tabela"
func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

func createTable(tx *sql.Tx, table string, header []string) {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = pq.QuoteIdentifier(name) + " TEXT"
	}

	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTable(table))); err != nil {
		log.Fatalf("ERRO ao remover tabela %s: %v", table, err)
	}

	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteTable(table), strings.Join(columns, ", "))); err != nil {
		log.Fatalf("ERRO ao criar tabela %s: %v", table, err)
	}
	log.Printf("Tabela %s criada com %d colunas", table, len(header))
}

func insertRows(tx *sql.Tx, table string, header []string, rows [][]string) {
	log.Printf("Iniciando inserção de %d linhas...", len(rows))
	startTime := time.Now()

	// COPY é bem mais rápido que um INSERT por linha no Superstore completo
	parts := strings.Split(table, ".")
	var copyIn string
	if len(parts) == 2 {
		copyIn = pq.CopyInSchema(parts[0], parts[1], header...)
	} else {
		copyIn = pq.CopyIn(table, header...)
	}

	stmt, err := tx.Prepare(copyIn)
	if err != nil {
		log.Fatalf("ERRO ao preparar COPY para %s: %v", table, err)
	}
	defer stmt.Close()

	successCount := 0
	for i, row := range rows {
		values := make([]any, len(header))
		for c := range header {
			if c < len(row) {
				values[c] = row[c]
			}
		}

		if _, err := stmt.Exec(values...); err != nil {
			log.Fatalf("ERRO ao inserir linha [%d/%d]: %v", i+1, len(rows), err)
		}
		successCount++
		if i > 0 && i%1000 == 0 {
			log.Printf("Progresso: %d/%d linhas processadas", i+1, len(rows))
		}
	}

	if _, err := stmt.Exec(); err != nil {
		log.Fatalf("ERRO ao finalizar COPY: %v", err)
	}

	elapsed := time.Since(startTime)
	log.Printf("Inserção concluída em %v. Linhas: %d", elapsed, successCount)
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}
	if !cfg.UseDatabase() {
		log.Fatal("ERRO: DATASET_TABLE não configurada")
	}

	path := cfg.Dataset.DefaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	header, rows, err := loading.NewFileSource(path).Read(ctx)
	if err != nil {
		log.Fatalf("ERRO ao ler %s: %v", path, err)
	}
	log.Printf("Arquivo %s lido: %d colunas, %d linhas", path, len(header), len(rows))

	log.Println("Conectando ao banco de dados...")
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ERRO ao verificar conexão com o banco: %v", err)
	}
	log.Println("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()
	log.Println("Iniciando transação...")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Fatalf("ERRO ao iniciar transação: %v", err)
	}

	createTable(tx, cfg.Dataset.Table, header)
	insertRows(tx, cfg.Dataset.Table, header, rows)

	if err := tx.Commit(); err != nil {
		log.Printf("ERRO ao confirmar transação: %v", err)
		if err := tx.Rollback(); err != nil {
			log.Fatalf("ERRO ao reverter transação: %v", err)
		}
		log.Println("Transação revertida")
		os.Exit(1)
	}

	elapsed := time.Since(startTime)
	log.Printf("Carga do dataset concluída em %v!", elapsed)
}

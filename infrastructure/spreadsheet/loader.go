package spreadsheet

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Loader lê o export financeiro e devolve a tabela bruta de células.
type Loader interface {
	Load() (*domain.RawTable, error)
}

// SourceUnavailableError indica que o arquivo da planilha não pôde ser
// aberto (caminho errado, arquivo corrompido, sem permissão).
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("planilha %s indisponível: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// XLSXLoader lê arquivos .xlsx com excelize.
type XLSXLoader struct {
	path  string
	sheet string
}

// NewXLSXLoader cria o leitor para o arquivo informado. sheet vazio usa a
// primeira aba do arquivo.
func NewXLSXLoader(path, sheet string) *XLSXLoader {
	return &XLSXLoader{path: path, sheet: sheet}
}

func (l *XLSXLoader) Load() (*domain.RawTable, error) {
	file, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: l.path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.WithError(closeErr).Warn("Erro ao fechar a planilha")
		}
	}()

	sheet, err := l.resolveSheet(file)
	if err != nil {
		return nil, err
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, &SourceUnavailableError{Path: l.path, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"arquivo": filepath.Base(l.path),
		"aba":     sheet,
		"linhas":  len(rows),
	}).Info("Planilha financeira carregada")

	return &domain.RawTable{
		Source: filepath.Base(l.path),
		Sheet:  sheet,
		Rows:   rows,
	}, nil
}

// resolveSheet escolhe a aba: a configurada quando existe, senão a
// primeira do arquivo.
func (l *XLSXLoader) resolveSheet(file *excelize.File) (string, error) {
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return "", &SourceUnavailableError{Path: l.path, Err: fmt.Errorf("arquivo sem abas")}
	}

	if l.sheet == "" {
		return sheets[0], nil
	}

	for _, name := range sheets {
		if name == l.sheet {
			return name, nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"configurada": l.sheet,
		"usada":       sheets[0],
	}).Warn("Aba configurada não existe na planilha; usando a primeira")

	return sheets[0], nil
}

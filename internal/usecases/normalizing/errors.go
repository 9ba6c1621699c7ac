package normalizing

import "fmt"

// SchemaError indica que a planilha não tem a forma mínima esperada
// (ex.: nenhuma coluna de data encontrada). A carga é abortada e o
// snapshot resultante fica vazio.
type SchemaError struct {
	Source string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("planilha %s com estrutura inválida: %s", e.Source, e.Reason)
}

// DataError indica que a planilha tem a estrutura esperada mas nenhuma
// linha aproveitável (ex.: todas as datas inválidas).
type DataError struct {
	Source string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("planilha %s sem dados aproveitáveis: %s", e.Source, e.Reason)
}

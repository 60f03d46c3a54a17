// Package tooling provides the tools offered to the model
package tooling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/sealor/students-chat/pkg/dialogue"
	"github.com/sealor/students-chat/pkg/records"
)

const (
	StudentsDBName = "ask_students_db"
	NoResults      = "No results found for this query."
)

const studentsDBDescription = "Run a SQLite query against the students table and return the matching rows, one tuple per line. " +
	"Columns: id (integer), first_name (text), last_name (text), age (integer), major (text), gpa (real, 0 to 4), " +
	"marital_status (Single, Married, Divorced or Widowed), education_status (Undergraduate, Graduate or Doctoral)."

type StudentsDBArguments struct {
	Query string `json:"query" jsonschema:"description=The SQL query to run against the students table"`
}

// Definition describes ask_students_db to the model.
func Definition() dialogue.ToolSpec {
	return dialogue.ToolSpec{
		Name:        StudentsDBName,
		Description: studentsDBDescription,
		Parameters:  studentsDBParameters(),
	}
}

func studentsDBParameters() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&StudentsDBArguments{})

	data, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprint("tooling: marshal schema: ", err))
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		panic(fmt.Sprint("tooling: unmarshal schema: ", err))
	}
	delete(params, "$schema")
	delete(params, "$id")
	return params
}

type Querier interface {
	Query(ctx context.Context, sqlText string) ([]records.Row, error)
}

// StudentsDB answers ask_students_db calls. It never returns an error; every
// failure is described in the returned text.
type StudentsDB struct {
	store Querier
	log   *slog.Logger
}

func NewStudentsDB(store Querier, log *slog.Logger) *StudentsDB {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &StudentsDB{store: store, log: log}
}

func (t *StudentsDB) AskDatabase(ctx context.Context, query string) string {
	rows, err := t.store.Query(ctx, query)
	if err != nil {
		var queryErr *records.QueryError
		if errors.As(err, &queryErr) {
			t.log.Info("query failed", "sql", queryErr.SQL, "error", queryErr.Err)
		} else {
			t.log.Warn("query failed", "sql", query, "error", err)
		}
		return fmt.Sprint("Error executing query: ", err)
	}
	if len(rows) == 0 {
		return NoResults
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = row.String()
	}
	return strings.Join(lines, "\n")
}

func (t *StudentsDB) Call(ctx context.Context, call dialogue.ToolCall) dialogue.ToolResultMessage {
	result := dialogue.ToolResultMessage{ToolCallID: call.ID, Name: call.Name}

	if call.Name != StudentsDBName {
		result.Content = fmt.Sprint("Error calling tool ", call.Name, "(): unknown tool")
		return result
	}

	var args StudentsDBArguments
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		result.Content = fmt.Sprint("Error calling tool ask_students_db(): ", err)
		return result
	}
	if strings.TrimSpace(args.Query) == "" {
		result.Content = "Error calling tool ask_students_db(): argument query is empty"
		return result
	}

	result.Content = t.AskDatabase(ctx, args.Query)
	return result
}

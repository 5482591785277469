package taskexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gehrmanng/taskplanner/internal/domain"
	"github.com/gehrmanng/taskplanner/pkg/taskexport"
)

func TestToCSV(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{UUID: "a", Title: "Buy milk", DueDate: &due, Done: false},
		{UUID: "b", Title: "Buy bread", Done: true},
	}

	data, err := taskexport.ToCSV(tasks)
	require.NoError(t, err)

	expected := "uuid;title;dueDate;done\n" +
		"a;Buy milk;2026-09-01T00:00:00Z;false\n" +
		"b;Buy bread;;true\n"
	assert.Equal(t, expected, string(data))
}

func TestToCSVQuotesDelimiter(t *testing.T) {
	tasks := []domain.Task{{UUID: "a", Title: "milk; eggs; butter"}}

	data, err := taskexport.ToCSV(tasks)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"milk; eggs; butter"`)
}

func TestToCSVEmptyList(t *testing.T) {
	data, err := taskexport.ToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "uuid;title;dueDate;done\n", string(data))
}

func TestToXLSX(t *testing.T) {
	tasks := []domain.Task{
		{UUID: "a", Title: "Buy milk", Done: false},
		{UUID: "b", Title: "Buy bread", Done: true},
	}

	data, err := taskexport.ToXLSX("Groceries", tasks)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Groceries")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"uuid", "title", "dueDate", "done"}, rows[0])
	assert.Equal(t, "Buy milk", rows[1][1])
	assert.Equal(t, "true", rows[2][3])
}

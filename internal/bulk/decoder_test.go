package bulk_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studenthunter/backend/internal/bulk"
)

func TestDecodeUnsupportedExtension(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"users.txt", "users.pdf", "users", "users.csv.bak"} {
		_, err := bulk.Decode(name, []byte("email,password,name,role\n"))
		assert.ErrorIs(t, err, bulk.ErrUnsupportedFormat, "file %q", name)
	}
}

func TestDecodeEmptyCSV(t *testing.T) {
	t.Parallel()

	_, err := bulk.Decode("users.csv", nil)
	assert.ErrorIs(t, err, bulk.ErrEmptyFile)

	// A header with zero data rows is still an empty table.
	_, err = bulk.Decode("users.csv", []byte("email,password,name,role\n"))
	assert.ErrorIs(t, err, bulk.ErrEmptyFile)
}

func TestDecodeMissingColumns(t *testing.T) {
	t.Parallel()

	data := []byte("email,password,name\na@x.com,p1,Alice\n")
	_, err := bulk.Decode("users.csv", data)

	var missing *bulk.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"role"}, missing.Columns)
	assert.Contains(t, err.Error(), "role")
}

func TestDecodeMissingColumnsBeforeRows(t *testing.T) {
	t.Parallel()

	// The column precondition is whole-file: it fires even when the header
	// alone is wrong and the rows would otherwise be fine.
	data := []byte("mail,pass\na@x.com,p1\n")
	_, err := bulk.Decode("users.csv", data)

	var missing *bulk.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"email", "password", "name", "role"}, missing.Columns)
}

func TestDecodeNormalizesHeader(t *testing.T) {
	t.Parallel()

	data := []byte(" Email ,PASSWORD,Name, Role \na@x.com,p1,Alice,student\n")
	rows, err := bulk.Decode("users.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "a@x.com", rows[0]["email"])
	assert.Equal(t, "p1", rows[0]["password"])
	assert.Equal(t, "Alice", rows[0]["name"])
	assert.Equal(t, "student", rows[0]["role"])
}

func TestDecodeShortRecordCellsAbsent(t *testing.T) {
	t.Parallel()

	data := []byte("email,password,name,role,university\na@x.com,p1,Alice,student\n")
	rows, err := bulk.Decode("users.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	val, ok := rows[0]["university"]
	assert.True(t, ok, "absent cell should be present with the empty marker")
	assert.Equal(t, "", val)
}

func TestDecodeStripsBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("email,password,name,role\na@x.com,p1,A,student\n")...)
	rows, err := bulk.Decode("users.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", rows[0]["email"])
}

func TestDecodeXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Email", "Password", "Name", "Role", "University"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"a@x.com", "p1", "Alice", "STUDENT", "MIT"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"b@x.com", "p2", "Bob", "employer"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := bulk.Decode("users.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "a@x.com", rows[0]["email"])
	assert.Equal(t, "MIT", rows[0]["university"])
	assert.Equal(t, "b@x.com", rows[1]["email"])
	assert.Equal(t, "", rows[1]["university"])
}

func TestDecodeXLSXGarbage(t *testing.T) {
	t.Parallel()

	_, err := bulk.Decode("users.xlsx", []byte("this is not a spreadsheet"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, bulk.ErrUnsupportedFormat))
}

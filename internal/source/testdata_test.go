package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/storage"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const dailyJSON = `[
  {"id": "reporte-diario-1", "name": "Cierre", "details": {"date": "2025-06-01", "totalSales": 1520.5, "breadsSold": "340"}},
  {"id": 2, "date": "1 de julio de 2025", "totalSales": "200"}
]`

const monthlyYAML = `
- id: reporte-mensual-2025-06
  monthNumber: 6
  year: "2025"
  totalSalesForMonth: 45000
  netProfitForMonth: 9000
- id: reporte-mensual-2025-07
  month: julio
  monthNumber: "7"
  year: 2025
  totalSalesForMonth: "47000.5"
`

const materialJSON = `{
  "id": "reporte-material-2025-06",
  "monthNumber": 6,
  "year": 2025,
  "totalCostOfRawMaterials": 12000,
  "costOfMainIngredient": {"name": "Harina", "cost": 4800}
}`

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (m *memoryStore) ReadObject(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

func (m *memoryStore) UploadObject(ctx context.Context, key string, data []byte) error {
	m.objects[key] = data
	return nil
}

package flatfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemStore)(nil)

// ItemStore persistencia de artículos en items.csv.
type ItemStore struct {
	fs   afero.Fs
	path string
}

// NewItemStore construye el adaptador sobre el filesystem dado.
func NewItemStore(fs afero.Fs, dataDir string) *ItemStore {
	return &ItemStore{fs: fs, path: filepath.Join(dataDir, "items.csv")}
}

// SaveAll reescribe el archivo con el conjunto completo.
func (s *ItemStore) SaveAll(items []*entity.Item) error {
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "%d%s%s%s%s%s%d\n",
			it.ID, delimiter, escape(it.Name), delimiter, it.Price.String(), delimiter, it.Stock)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("flatfile: escribir %s: %w", s.path, err)
	}
	return nil
}

// LoadAll lee el conjunto completo; archivo ausente equivale a vacío.
func (s *ItemStore) LoadAll() ([]*entity.Item, error) {
	lines, err := readLines(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	items := make([]*entity.Item, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, delimiter, 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("flatfile: registro de item malformado: %q", line)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("flatfile: id de item %q: %w", parts[0], err)
		}
		price, err := decimal.NewFromString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("flatfile: precio de item %q: %w", parts[2], err)
		}
		stock, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, fmt.Errorf("flatfile: stock de item %q: %w", parts[3], err)
		}
		items = append(items, &entity.Item{ID: id, Name: unescape(parts[1]), Price: price, Stock: stock})
	}
	return items, nil
}

// readLines devuelve las líneas no vacías del archivo, o nil si no existe.
func readLines(fs afero.Fs, path string) ([]string, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("flatfile: stat %s: %w", path, err)
	}
	if !exists {
		return nil, nil
	}
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("flatfile: leer %s: %w", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

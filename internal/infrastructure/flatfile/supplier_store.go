package flatfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierStore)(nil)

// SupplierStore persistencia de proveedores en suppliers.txt (un nombre por
// línea, mismo escape del delimitador).
type SupplierStore struct {
	fs   afero.Fs
	path string
}

// NewSupplierStore construye el adaptador sobre el filesystem dado.
func NewSupplierStore(fs afero.Fs, dataDir string) *SupplierStore {
	return &SupplierStore{fs: fs, path: filepath.Join(dataDir, "suppliers.txt")}
}

// SaveAll reescribe el archivo con el conjunto completo.
func (s *SupplierStore) SaveAll(suppliers []*entity.Supplier) error {
	var sb strings.Builder
	for _, sp := range suppliers {
		sb.WriteString(escape(sp.Name))
		sb.WriteString("\n")
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("flatfile: escribir %s: %w", s.path, err)
	}
	return nil
}

// LoadAll lee el conjunto completo; archivo ausente equivale a vacío.
func (s *SupplierStore) LoadAll() ([]*entity.Supplier, error) {
	lines, err := readLines(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	suppliers := make([]*entity.Supplier, 0, len(lines))
	for _, line := range lines {
		suppliers = append(suppliers, &entity.Supplier{Name: unescape(line)})
	}
	return suppliers, nil
}

package flatfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/supermart-pos/internal/domain/entity"
	"github.com/jhoicas/supermart-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerStore)(nil)

// CustomerStore persistencia de clientes en customers.csv.
type CustomerStore struct {
	fs   afero.Fs
	path string
}

// NewCustomerStore construye el adaptador sobre el filesystem dado.
func NewCustomerStore(fs afero.Fs, dataDir string) *CustomerStore {
	return &CustomerStore{fs: fs, path: filepath.Join(dataDir, "customers.csv")}
}

// SaveAll reescribe el archivo con el conjunto completo.
func (s *CustomerStore) SaveAll(customers []*entity.Customer) error {
	var sb strings.Builder
	for _, c := range customers {
		fmt.Fprintf(&sb, "%d%s%s\n", c.ID, delimiter, escape(c.Name))
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("flatfile: escribir %s: %w", s.path, err)
	}
	return nil
}

// LoadAll lee el conjunto completo; archivo ausente equivale a vacío.
func (s *CustomerStore) LoadAll() ([]*entity.Customer, error) {
	lines, err := readLines(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	customers := make([]*entity.Customer, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, delimiter, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("flatfile: registro de cliente malformado: %q", line)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("flatfile: id de cliente %q: %w", parts[0], err)
		}
		customers = append(customers, &entity.Customer{ID: id, Name: unescape(parts[1])})
	}
	return customers, nil
}

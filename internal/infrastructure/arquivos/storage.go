// Package arquivos guarda em disco as fotos enviadas nos cadastros
// (documentos de clientes e fichas de venda).
package arquivos

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var nomeSeguro = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Storage salva arquivos de upload sob um diretório raiz, servido pela API em
// /uploads. Apenas imagens JPG/JPEG/PNG são aceitas.
type Storage struct {
	raiz string
}

// NewStorage cria o diretório raiz se necessário.
func NewStorage(raiz string) (*Storage, error) {
	if err := os.MkdirAll(raiz, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &Storage{raiz: raiz}, nil
}

// Raiz devolve o diretório raiz dos uploads.
func (s *Storage) Raiz() string { return s.raiz }

// Save grava o arquivo em <raiz>/<subdir>/<nomeBase>_<timestamp><ext> e
// devolve o caminho relativo à raiz (usável como URL sob /uploads).
func (s *Storage) Save(fh *multipart.FileHeader, subdir, nomeBase string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", fmt.Errorf("formato de arquivo inválido, apenas JPG, JPEG e PNG são permitidos")
	}

	dir := filepath.Join(s.raiz, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("criar diretório %s: %w", subdir, err)
	}

	base := nomeSeguro.ReplaceAllString(nomeBase, "_")
	if base == "" {
		base = "arquivo"
	}
	nome := fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext)
	destino := filepath.Join(dir, nome)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("abrir upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(destino)
	if err != nil {
		return "", fmt.Errorf("criar arquivo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destino)
		return "", fmt.Errorf("gravar arquivo: %w", err)
	}
	return filepath.ToSlash(filepath.Join(subdir, nome)), nil
}

// Remove apaga um arquivo salvo anteriormente. Caminho relativo à raiz.
func (s *Storage) Remove(relativo string) error {
	if relativo == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.raiz, filepath.FromSlash(relativo))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remover arquivo: %w", err)
	}
	return nil
}

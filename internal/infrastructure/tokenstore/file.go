package tokenstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.TokenStore = (*FileStore)(nil)

const sealedPrefix = "sbx1:"

// FileStore almacén durable en un archivo JSON (permisos 0600).
// Con passphrase el contenido se sella con NaCl secretbox.
type FileStore struct {
	mu   sync.Mutex
	path string
	key  *[32]byte
}

// NewFileStore construye el almacén. passphrase vacío = archivo en claro.
func NewFileStore(path, passphrase string) *FileStore {
	fs := &FileStore{path: path}
	if passphrase != "" {
		k := sha256.Sum256([]byte(passphrase))
		fs.key = &k
	}
	return fs
}

// Path ruta del archivo.
func (s *FileStore) Path() string { return s.path }

// Get lee la sesión del disco. Archivo inexistente = sin sesión.
func (s *FileStore) Get(_ context.Context) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: leer %s: %w", s.path, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}

	payload, err := s.open(raw)
	if err != nil {
		return nil, err
	}
	var sess entity.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("tokenstore: decodificar sesión: %w", err)
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

// Set escribe la sesión de forma atómica (archivo temporal + rename).
func (s *FileStore) Set(_ context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("tokenstore: serializar sesión: %w", err)
	}
	data, err := s.seal(payload)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: crear directorio: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: escribir %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("tokenstore: renombrar: %w", err)
	}
	return nil
}

// Clear elimina el archivo; no falla si ya no existe.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("tokenstore: borrar %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) seal(payload []byte) ([]byte, error) {
	if s.key == nil {
		return payload, nil
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("tokenstore: generar nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], payload, &nonce, s.key)
	return []byte(sealedPrefix + base64.StdEncoding.EncodeToString(box)), nil
}

func (s *FileStore) open(raw []byte) ([]byte, error) {
	text := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(text, sealedPrefix) {
		if s.key != nil {
			return nil, fmt.Errorf("tokenstore: el archivo no está sellado y se configuró una clave")
		}
		return []byte(text), nil
	}
	if s.key == nil {
		return nil, fmt.Errorf("tokenstore: archivo sellado pero SESSION_ENCRYPTION_KEY está vacío")
	}
	box, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(text, sealedPrefix))
	if err != nil || len(box) < 24 {
		return nil, fmt.Errorf("tokenstore: contenido sellado corrupto")
	}
	var nonce [24]byte
	copy(nonce[:], box[:24])
	payload, ok := secretbox.Open(nil, box[24:], &nonce, s.key)
	if !ok {
		return nil, fmt.Errorf("tokenstore: no se pudo abrir la sesión (clave incorrecta)")
	}
	return payload, nil
}

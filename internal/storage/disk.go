package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DiskURLPrefix is where the server mounts Handler for disk storage.
const DiskURLPrefix = "/files/"

// DiskStorage keeps files under a local directory. Intended for development.
// Download links carry a signed token naming the file and its expiry.
type DiskStorage struct {
	root    string
	baseURL string
	secret  []byte
	expiry  time.Duration
	now     func() time.Time
}

func NewDiskStorage(root, baseURL, secret string, expiry time.Duration) (*DiskStorage, error) {
	if secret == "" {
		return nil, errors.New("disk storage requires a signing secret")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStorage{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		secret:  []byte(secret),
		expiry:  expiry,
		now:     time.Now,
	}, nil
}

// key is the slash-separated form of a storage path used in links and tokens.
func key(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+p)), "/")
}

func (s *DiskStorage) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *DiskStorage) Save(ctx context.Context, path string, file io.Reader, _ string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(f, readerWithContext(ctx, file))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *DiskStorage) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns a link that is valid until the configured expiry.
func (s *DiskStorage) URL(_ context.Context, path string) (string, error) {
	if _, err := s.resolve(path); err != nil {
		return "", err
	}

	name := key(path)
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign download link: %w", err)
	}
	return s.baseURL + "/" + name + "?token=" + url.QueryEscape(signed), nil
}

// verify reports whether token grants access to name.
func (s *DiskStorage) verify(token, name string) bool {
	if token == "" {
		return false
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	return err == nil && claims.Subject == name
}

// Handler serves stored files to holders of a link from URL. Mount it under
// DiskURLPrefix. Directories are never listed.
func (s *DiskStorage) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, DiskURLPrefix)
		if rel == "" || strings.HasSuffix(rel, "/") {
			http.NotFound(w, r)
			return
		}

		name := key(rel)
		if !s.verify(r.URL.Query().Get("token"), name) {
			http.Error(w, "invalid or expired link", http.StatusForbidden)
			return
		}

		full, err := s.resolve(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", "private, no-store")
		http.ServeFile(w, r, full)
	})
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

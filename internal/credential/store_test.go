package credential

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bobby-s-dev/weather-lookup/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type failingKV struct {
	getErr error
	putErr error
}

func (f *failingKV) Get(ctx context.Context, key string) (string, error) { return "", f.getErr }
func (f *failingKV) Put(ctx context.Context, key, value string) error   { return f.putErr }
func (f *failingKV) Close() error                                       { return nil }

func openKV(t *testing.T, path string) *storage.SQLiteStore {
	t.Helper()
	kv, err := storage.NewSQLite(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	return kv
}

func TestNew_UsesDefaultWhenNothingSaved(t *testing.T) {
	kv := openKV(t, filepath.Join(t.TempDir(), "s.db"))
	defer kv.Close()

	s, err := New(context.Background(), kv, "from-env", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Get() != "from-env" {
		t.Errorf("Expected from-env, got %q", s.Get())
	}
}

func TestNew_EmptyWhenUnset(t *testing.T) {
	s, err := New(context.Background(), nil, "", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Get() != "" {
		t.Errorf("Expected empty credential, got %q", s.Get())
	}
}

func TestSave_RoundTripsThroughFreshSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	ctx := context.Background()

	kv := openKV(t, path)
	s, err := New(ctx, kv, "from-env", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Save(ctx, "user-key"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if s.Get() != "user-key" {
		t.Errorf("Expected in-memory value to change, got %q", s.Get())
	}
	kv.Close()

	kv2 := openKV(t, path)
	defer kv2.Close()
	fresh, err := New(ctx, kv2, "from-env", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if fresh.Get() != "user-key" {
		t.Errorf("Expected saved key to win over default, got %q", fresh.Get())
	}
}

func TestSet_DoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	ctx := context.Background()

	kv := openKV(t, path)
	s, _ := New(ctx, kv, "", zaptest.NewLogger(t))
	s.Set("typed-only")
	if s.Get() != "typed-only" {
		t.Errorf("Expected typed-only, got %q", s.Get())
	}
	kv.Close()

	kv2 := openKV(t, path)
	defer kv2.Close()
	fresh, _ := New(ctx, kv2, "", zaptest.NewLogger(t))
	if fresh.Get() != "" {
		t.Errorf("Expected nothing persisted, got %q", fresh.Get())
	}
}

func TestSave_RejectsBlank(t *testing.T) {
	s, _ := New(context.Background(), nil, "keep", zaptest.NewLogger(t))
	if err := s.Save(context.Background(), "   "); !errors.Is(err, ErrEmptyCredential) {
		t.Fatalf("Expected ErrEmptyCredential, got %v", err)
	}
	if s.Get() != "keep" {
		t.Errorf("Expected value unchanged, got %q", s.Get())
	}
}

func TestStorageErrors(t *testing.T) {
	boom := errors.New("disk gone")

	if _, err := New(context.Background(), &failingKV{getErr: boom}, "", zap.NewNop()); !errors.Is(err, boom) {
		t.Errorf("Expected load error to surface, got %v", err)
	}

	s, err := New(context.Background(), &failingKV{getErr: storage.ErrNotFound, putErr: boom}, "", zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Save(context.Background(), "k"); !errors.Is(err, boom) {
		t.Errorf("Expected save error to surface, got %v", err)
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":                                 "",
		"abc":                              "***",
		"abcd":                             "****",
		"0123456789abcdef0123456789abcdef": "****************************cdef",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/language"
)

// countingProvider records how often each operation is invoked.
type countingProvider struct {
	StyleProvider

	mu       sync.Mutex
	lists    int
	gets     map[language.Language]int
	failName string
}

func newCountingProvider(inner StyleProvider) *countingProvider {
	return &countingProvider{StyleProvider: inner, gets: make(map[language.Language]int)}
}

func (p *countingProvider) ListStyleNames(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	p.lists++
	p.mu.Unlock()
	return p.StyleProvider.ListStyleNames(ctx)
}

func (p *countingProvider) GetStyle(ctx context.Context, name string, lang language.Language) (*document.Mapping, error) {
	p.mu.Lock()
	p.gets[lang]++
	p.mu.Unlock()
	if name == p.failName {
		return nil, &InvocationError{Executable: "fake", Args: []string{name}, Err: errors.New("exit status 1")}
	}
	return p.StyleProvider.GetStyle(ctx, name, lang)
}

func styleDoc(t *testing.T, text string) *document.Mapping {
	t.Helper()
	doc, err := document.ParseSingle([]byte(text))
	require.NoError(t, err)
	return doc
}

func newTestStatic(t *testing.T) *Static {
	s := NewStatic()
	s.Add("WebKit", language.None, styleDoc(t, "Language: Cpp\nIndentWidth: 4\n"))
	s.Add("LLVM", language.None, styleDoc(t, "Language: Cpp\nIndentWidth: 2\n"))
	s.Add("LLVM", language.Java, styleDoc(t, "Language: Java\nIndentWidth: 2\n"))
	s.Add("Google", language.None, styleDoc(t, "Language: Cpp\nIndentWidth: 2\nColumnLimit: 80\n"))
	return s
}

func TestResolverCandidatesAreOrderedByName(t *testing.T) {
	r := NewResolver(newTestStatic(t), &ResolverOptions{Concurrency: 3})

	cands, err := r.Candidates(context.Background(), language.None)
	require.NoError(t, err)
	require.Len(t, cands, 3)
	assert.Equal(t, "Google", cands[0].Name)
	assert.Equal(t, "LLVM", cands[1].Name)
	assert.Equal(t, "WebKit", cands[2].Name)

	width, _ := cands[2].Base.Lookup("IndentWidth")
	assert.Equal(t, document.Int(4), width)
}

func TestResolverCachesPerLanguage(t *testing.T) {
	p := newCountingProvider(newTestStatic(t))
	r := NewResolver(p, nil)
	ctx := context.Background()

	_, err := r.Candidates(ctx, language.None)
	require.NoError(t, err)
	_, err = r.Candidates(ctx, language.None)
	require.NoError(t, err)

	java, err := r.Candidates(ctx, language.Java)
	require.NoError(t, err)
	lang, _ := java[1].Base.Lookup("Language")
	assert.Equal(t, document.String("Java"), lang, "language-specific variant is used")
	lang, _ = java[0].Base.Lookup("Language")
	assert.Equal(t, document.String("Cpp"), lang, "falls back to the default variant")

	names, err := r.StyleNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Google", "LLVM", "WebKit"}, names)

	assert.Equal(t, 1, p.lists)
	assert.Equal(t, 3, p.gets[language.None])
	assert.Equal(t, 3, p.gets[language.Java])
}

func TestResolverFailureAbortsAndIsNotCached(t *testing.T) {
	p := newCountingProvider(newTestStatic(t))
	p.failName = "LLVM"
	r := NewResolver(p, &ResolverOptions{Concurrency: 1})

	_, err := r.Candidates(context.Background(), language.None)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvocation)
	assert.Contains(t, err.Error(), "fetching style LLVM")

	p.failName = ""
	cands, err := r.Candidates(context.Background(), language.None)
	require.NoError(t, err)
	assert.Len(t, cands, 3)
}

func TestResolverRejectsEmptyCatalog(t *testing.T) {
	r := NewResolver(NewStatic(), nil)
	_, err := r.Candidates(context.Background(), language.None)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestStaticUnknownStyle(t *testing.T) {
	s := newTestStatic(t)
	_, err := s.GetStyle(context.Background(), "Microsoft", language.None)
	assert.ErrorIs(t, err, ErrFormat)

	only := NewStatic()
	only.Add("GNU", language.Cpp, styleDoc(t, "IndentWidth: 2\n"))
	_, err = only.GetStyle(context.Background(), "GNU", language.Java)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestStaticReturnsCopies(t *testing.T) {
	s := newTestStatic(t)
	first, err := s.GetStyle(context.Background(), "LLVM", language.None)
	require.NoError(t, err)
	first.SetString("IndentWidth", document.Int(8))

	second, err := s.GetStyle(context.Background(), "LLVM", language.None)
	require.NoError(t, err)
	width, _ := second.Lookup("IndentWidth")
	assert.Equal(t, document.Int(2), width)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"LLVM.yml":       "Language: Cpp\nIndentWidth: 2\n",
		"LLVM.Java.yaml": "Language: Java\nIndentWidth: 2\n",
		"GNU.yml":        "Language: Cpp\nIndentWidth: 2\nBreakBeforeBraces: GNU\n",
		"README.md":      "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	provider, err := NewProvider(BackendDirectory, &Config{Directory: dir})
	require.NoError(t, err)

	names, err := provider.ListStyleNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"GNU", "LLVM"}, names)

	java, err := provider.GetStyle(context.Background(), "LLVM", language.Java)
	require.NoError(t, err)
	lang, _ := java.Lookup("Language")
	assert.Equal(t, document.String("Java"), lang)
}

func TestLoadDirectoryErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDirectory(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("unknown language suffix", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "LLVM.Rust.yml"), []byte("A: 1\n"), 0644))
		_, err := LoadDirectory(dir)
		assert.ErrorContains(t, err, "unknown language")
	})

	t.Run("not a mapping", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "LLVM.yml"), []byte("- 1\n"), 0644))
		_, err := LoadDirectory(dir)
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := LoadDirectory(t.TempDir())
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(BackendClangFormat, &Config{Executable: "/opt/llvm/bin/clang-format"})
	require.NoError(t, err)
	cf, ok := p.(*ClangFormat)
	require.True(t, ok)
	assert.Equal(t, "/opt/llvm/bin/clang-format", cf.Executable())

	p, err = NewProvider("", nil)
	require.NoError(t, err)
	assert.IsType(t, &ClangFormat{}, p)

	_, err = NewProvider(BackendDirectory, &Config{})
	assert.Error(t, err)

	_, err = NewProvider("ftp", nil)
	assert.ErrorContains(t, err, "unknown catalog backend")
}

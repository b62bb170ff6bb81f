// Package server implements the CHL language server. It publishes the
// diagnostics of a full compile on every edit and answers hover requests
// for constants, globals and scripts.
package server

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/chazu/chlc/compiler"
	"github.com/chazu/chlc/manifest"
	"github.com/chazu/chlc/pkg/diag"
)

const lspName = "chl-lsp"

var log = commonlog.GetLogger("chlc.lsp")

// document is an open editor buffer and the session of its last compile.
type document struct {
	text     string
	compiler *compiler.Compiler
}

// LspServer checks CHL documents as they are edited.
type LspServer struct {
	mu   sync.Mutex
	docs map[string]*document // URI → document

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// NewLSP creates a language server.
func NewLSP(version string) *LspServer {
	s := &LspServer{
		docs:    make(map[string]*document),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover: s.textDocumentHover,
	}

	s.server = glspserver.NewServer(&s.handler, lspName, false)

	return s
}

// Run starts the LSP server on stdio. Blocks until the client disconnects.
func (s *LspServer) Run() error {
	return s.server.RunStdio()
}

// --- LSP lifecycle handlers ---

func (s *LspServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("CHL LSP initializing")

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lspName,
			Version: &s.version,
		},
	}, nil
}

func (s *LspServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *LspServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *LspServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// --- Document synchronization ---

func (s *LspServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *LspServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	// With Full sync, the last change event contains the full text
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.update(ctx, params.TextDocument.URI, whole.Text)
		}
	}
	return nil
}

func (s *LspServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	delete(s.docs, string(uri))
	s.mu.Unlock()

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// update stores the new text, recompiles and publishes the diagnostics.
func (s *LspServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[string(uri)] = &document{text: text}
	overlay := s.overlay()
	s.mu.Unlock()

	path := uriToPath(uri)
	c, errs := analyze(path, overlay)

	s.mu.Lock()
	if doc, ok := s.docs[string(uri)]; ok && doc.text == text {
		doc.compiler = c
	}
	s.mu.Unlock()

	diagnostics := []protocol.Diagnostic{}
	for _, err := range errs {
		diagnostics = append(diagnostics, toDiagnostic(err))
	}
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// overlay maps the path of every open document to its text. Callers hold mu.
func (s *LspServer) overlay() map[string]string {
	out := make(map[string]string, len(s.docs))
	for uri, doc := range s.docs {
		out[uriToPath(protocol.DocumentUri(uri))] = doc.text
	}
	return out
}

// --- Hover ---

func (s *LspServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.mu.Lock()
	doc, ok := s.docs[string(params.TextDocument.URI)]
	s.mu.Unlock()

	if !ok || doc.compiler == nil {
		return nil, nil
	}

	word := extractWord(doc.text, params.Position)
	if word == "" {
		return nil, nil
	}

	value := describe(doc.compiler, word)
	if value == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}, nil
}

// describe returns the markdown shown when hovering over name.
func describe(c *compiler.Compiler, name string) string {
	if v, ok := c.Constant(name); ok {
		return fmt.Sprintf("**%s** = %d", name, v)
	}
	if script, ok := c.Unit().Script(name); ok {
		return fmt.Sprintf("**%s**\n\ndefined in `%s`", script.Signature(), filepath.Base(script.SourceFile))
	}
	if index, ok := c.Unit().GlobalIndex(name); ok {
		return fmt.Sprintf("global **%s** (slot %d)", name, index)
	}
	return ""
}

// --- Diagnostics ---

// analyze compiles the document at path and returns the session with the
// errors that belong to the document. When the document is part of a chl.toml
// project, the whole project is compiled with the project's constants so
// that references to other files resolve. Texts in overlay replace the
// content on disk.
func analyze(path string, overlay map[string]string) (*compiler.Compiler, []error) {
	path = filepath.Clean(path)

	opts := compiler.Options{SharedStrings: true}
	sources := []string{path}
	alone := true
	m, err := manifest.FindAndLoad(filepath.Dir(path))
	if err != nil {
		log.Warningf("%s: %s", path, err)
	}
	if m != nil {
		opts = m.CompilerOptions()
		listed, err := m.SourcePaths()
		if err != nil {
			log.Warningf("%s: %s", m.Dir, err)
		}
		if contains(listed, path) {
			sources, alone = listed, false
		}
	}
	if alone {
		// Compiled alone: other files may define the scripts it runs.
		opts.IgnoreMissingScripts = true
	}

	c := compiler.New(opts)
	if m != nil {
		if err := m.LoadConstants(c); err != nil {
			log.Warningf("%s: %s", m.Dir, err)
		}
	}

	var errs []error
	failed := false
	for _, src := range sources {
		src = filepath.Clean(src)
		if text, ok := overlay[src]; ok {
			err = c.Compile(src, []byte(text))
		} else {
			err = c.CompileFile(src)
		}
		if err != nil {
			failed = true
			if belongsTo(err, path) {
				errs = append(errs, err)
			}
		}
	}
	if !failed {
		if _, err := c.Seal(); err != nil && belongsTo(err, path) {
			errs = append(errs, err)
		}
	}
	return c, errs
}

func belongsTo(err error, path string) bool {
	pos, ok := diag.PosOf(err)
	return ok && filepath.Clean(pos.File) == path
}

func contains(list []string, path string) bool {
	for _, p := range list {
		if filepath.Clean(p) == path {
			return true
		}
	}
	return false
}

// toDiagnostic converts a compile error. Positions are 1-based in
// diagnostics and 0-based in LSP; an error without a line lands on the
// first line.
func toDiagnostic(err error) protocol.Diagnostic {
	var (
		line, char protocol.UInteger
		message    = err.Error()
	)
	var de *diag.Error
	if errors.As(err, &de) {
		message = de.Message
		if de.Pos.Line > 0 {
			line = protocol.UInteger(de.Pos.Line - 1)
		}
		if de.Pos.Column > 0 {
			char = protocol.UInteger(de.Pos.Column - 1)
		}
	}

	severity := protocol.DiagnosticSeverityError
	if diag.IsNotImplemented(err) {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := lspName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: char},
			End:   protocol.Position{Line: line, Character: char + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// --- Text extraction helpers ---

// uriToPath returns the file system path of a file:// URI. Other URIs are
// returned unchanged.
func uriToPath(uri protocol.DocumentUri) string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return string(uri)
	}
	return filepath.FromSlash(u.Path)
}

// extractWord returns the full identifier under the cursor.
func extractWord(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := int(pos.Character)
	if col > len(line) {
		col = len(line)
	}

	start := col
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	return line[start:end]
}

func isWordChar(ch byte) bool {
	r := rune(ch)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || ch == '_'
}

func boolPtr(b bool) *bool {
	return &b
}

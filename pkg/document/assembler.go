// Package document assembles the final tagged text handed to the clipboard.
//
// The output is a fixed sequence of tagged sections whose free-form bodies
// are wrapped as opaque character data, so file contents can never break a
// section boundary. Assembly is deterministic: identical inputs produce a
// byte-identical document.
package document

import (
	"fmt"
	"sort"
	"strings"

	"promptdeck/pkg/token"
)

// FileSection is one selected file's contribution to the code section.
type FileSection struct {
	Path    string // root-relative slash path, used as the path attribute
	Content string
}

// RemoteSection is one included remote source.
type RemoteSection struct {
	URL     string
	Content string
}

// Input carries everything a single build needs. The assembler never touches
// application state; the caller snapshots all inputs first.
type Input struct {
	SystemPrompt    string
	Instruction     string
	FileTree        string // empty when the tree is toggled off
	Files           []FileSection
	Remotes         []RemoteSection
	TerminalCommand string
	TerminalOutput  string
}

// Document is the computed projection for one build action.
type Document struct {
	Text     string
	Tokens   int // authoritative count over the final text
	Estimate int // cheap character-derived preview figure
}

// Assemble merges the inputs into one document. Files are emitted sorted by
// path regardless of selection order, and the instruction appears twice, once
// near the top and once at the bottom, so models attend to it on both sides
// of the bulk context.
func Assemble(in Input) Document {
	files := make([]FileSection, len(in.Files))
	copy(files, in.Files)
	sort.Slice(files, func(a, b int) bool { return files[a].Path < files[b].Path })

	var b strings.Builder

	writeSection(&b, "system_prompt", in.SystemPrompt)
	writeSection(&b, "instruction", in.Instruction)
	if in.FileTree != "" {
		writeSection(&b, "file_tree", in.FileTree)
	}

	b.WriteString("<code>\n")
	for _, f := range files {
		fmt.Fprintf(&b, "<file path=\"%s\">\n", escapeAttr(f.Path))
		b.WriteString(wrapOpaque(f.Content))
		b.WriteString("\n</file>\n")
	}
	b.WriteString("</code>\n\n")

	for _, r := range in.Remotes {
		fmt.Fprintf(&b, "<remote url=\"%s\">\n", escapeAttr(r.URL))
		b.WriteString(wrapOpaque(r.Content))
		b.WriteString("\n</remote>\n\n")
	}

	if in.TerminalCommand != "" {
		writeSection(&b, "terminal_command", in.TerminalCommand)
		writeSection(&b, "terminal_output", in.TerminalOutput)
	}

	writeSection(&b, "instruction", in.Instruction)

	text := b.String()
	return Document{
		Text:     text,
		Tokens:   token.Count(text),
		Estimate: token.Estimate(int64(len(text))),
	}
}

func writeSection(b *strings.Builder, tag, body string) {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">\n")
	b.WriteString(wrapOpaque(body))
	b.WriteString("\n</")
	b.WriteString(tag)
	b.WriteString(">\n\n")
}

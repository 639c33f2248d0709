package source

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func testTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1", "notes.txt"), "\ufeffAndi: Villa 2-0 Burnley\n")
	writeFile(t, filepath.Join(dir, "gw2", "picks.md"), "Budi: Burnley 0-1 Villa\n")
	writeFile(t, filepath.Join(dir, "loose.chat.txt"), "[16/08/2025, 10:00] Citra: Arsenal 1-1 Liverpool\n")
	writeFile(t, filepath.Join(dir, "1", "ignored.pdf"), "binary")
	writeFile(t, filepath.Join(dir, ".hidden", "x.txt"), "Andi: Villa 9-9 Burnley\n")
	writeZip(t, filepath.Join(dir, "1", "WhatsApp Chat.zip"), map[string]string{
		"_chat.txt": "[16/08/2025, 09:00] Dewi: Man Utd 1-2 Man City",
		"photo.jpg": "not text",
	})
	writeZip(t, filepath.Join(dir, "1", "empty.zip"), map[string]string{"photo.jpg": "x"})
	return dir
}

func TestLoader_LoadDocuments(t *testing.T) {
	dir := testTree(t)
	loader := NewLoader(LoaderConfig{Dir: dir, Workers: 2, DefaultGameweek: 3}, nil)

	docs, skipped, err := loader.LoadDocuments(context.Background(), prediction.Scope{LeagueID: "epl"})
	if err != nil {
		t.Fatalf("load documents: %v", err)
	}

	want := []struct {
		id       string
		kind     message.Kind
		gameweek int
	}{
		{id: "1/WhatsApp Chat.zip", kind: message.KindChatExport, gameweek: 1},
		{id: "1/notes.txt", kind: message.KindPlain, gameweek: 1},
		{id: "gw2/picks.md", kind: message.KindPlain, gameweek: 2},
		{id: "loose.chat.txt", kind: message.KindChatExport, gameweek: 3},
	}
	if len(docs) != len(want) {
		t.Fatalf("unexpected document count: got=%d want=%d (%+v)", len(docs), len(want), docs)
	}
	for i, w := range want {
		if docs[i].ID != w.id || docs[i].Kind != w.kind || docs[i].Gameweek != w.gameweek {
			t.Fatalf("document %d: got=%s/%s/%d want=%s/%s/%d", i, docs[i].ID, docs[i].Kind, docs[i].Gameweek, w.id, w.kind, w.gameweek)
		}
	}
	if docs[0].Body != "[16/08/2025, 09:00] Dewi: Man Utd 1-2 Man City\n" {
		t.Fatalf("unexpected archive body: %q", docs[0].Body)
	}
	if docs[1].Body != "Andi: Villa 2-0 Burnley\n" {
		t.Fatalf("byte order mark should be stripped: %q", docs[1].Body)
	}

	if len(skipped) != 1 || skipped[0].Reason != verification.DropUnsupportedSource || skipped[0].SourceID != "1/empty.zip" {
		t.Fatalf("unexpected skipped entries: %+v", skipped)
	}
}

func TestLoader_ScopeGameweekAndUnknownRound(t *testing.T) {
	dir := testTree(t)

	loader := NewLoader(LoaderConfig{Dir: dir}, nil)
	docs, skipped, err := loader.LoadDocuments(context.Background(), prediction.Scope{LeagueID: "epl", Gameweek: 2})
	if err != nil {
		t.Fatalf("load documents: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "gw2/picks.md" || docs[1].ID != "loose.chat.txt" || docs[1].Gameweek != 2 {
		t.Fatalf("unexpected scoped documents: %+v", docs)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped: %+v", skipped)
	}

	_, skipped, err = loader.LoadDocuments(context.Background(), prediction.Scope{LeagueID: "epl"})
	if err != nil {
		t.Fatalf("load documents: %v", err)
	}
	found := false
	for _, item := range skipped {
		if item.SourceID == "loose.chat.txt" && item.Reason == verification.DropUnknownRound {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown round for loose file, got=%+v", skipped)
	}
}

func TestLoader_OutOfRangeGameweekDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024", "season.txt"), "Andi: Villa 2-0 Burnley\n")
	writeFile(t, filepath.Join(dir, "0", "zero.txt"), "Andi: Villa 2-0 Burnley\n")
	writeFile(t, filepath.Join(dir, "99", "last.txt"), "Andi: Villa 2-0 Burnley\n")

	loader := NewLoader(LoaderConfig{Dir: dir, DefaultGameweek: 3}, nil)
	docs, skipped, err := loader.LoadDocuments(context.Background(), prediction.Scope{LeagueID: "epl"})
	if err != nil {
		t.Fatalf("load documents: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "99/last.txt" || docs[0].Gameweek != 99 {
		t.Fatalf("unexpected documents: %+v", docs)
	}

	unknown := make(map[string]bool)
	for _, item := range skipped {
		if item.Reason == verification.DropUnknownRound {
			unknown[item.SourceID] = true
		}
	}
	if len(skipped) != 2 || !unknown["2024/season.txt"] || !unknown["0/zero.txt"] {
		t.Fatalf("expected both out-of-range directories as unknown round, got=%+v", skipped)
	}
}

func TestLoader_MissingDirectory(t *testing.T) {
	loader := NewLoader(LoaderConfig{Dir: filepath.Join(t.TempDir(), "nope")}, nil)
	if _, _, err := loader.LoadDocuments(context.Background(), prediction.Scope{LeagueID: "epl"}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

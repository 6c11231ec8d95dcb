package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
)

func TestSendMultipartTurn(t *testing.T) {
	mentor := catalog.MentorByID("lia")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("missing audio: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			if string(data) != "webm-bytes" || header.Filename != "answer.webm" {
				t.Errorf("unexpected audio %q (%s)", data, header.Filename)
			}
			if ct := header.Header.Get("Content-Type"); ct != "audio/webm" {
				t.Errorf("unexpected audio content type %q", ct)
			}
		}

		if got := r.FormValue("candidate_id"); got != "c-ana" {
			t.Errorf("unexpected candidate_id %q", got)
		}
		if got := r.FormValue("questionIndex"); got != "2" {
			t.Errorf("unexpected questionIndex %q", got)
		}

		var persona catalog.Mentor
		if err := json.Unmarshal([]byte(r.FormValue("mentorData")), &persona); err != nil || persona.ID != "lia" {
			t.Errorf("unexpected mentorData %q (%v)", r.FormValue("mentorData"), err)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set(HeaderAssistantText, "Que%20legal%2C%20Ana%21")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	reply, err := client.Send(context.Background(), Turn{
		Audio:         strings.NewReader("webm-bytes"),
		AudioName:     "/tmp/answer.webm",
		CandidateID:   "c-ana",
		QuestionIndex: 2,
		Mentor:        mentor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(reply.Audio) != "mp3-bytes" || reply.ContentType != "audio/mpeg" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if reply.Text != "Que legal, Ana!" {
		t.Fatalf("unexpected reply text %q", reply.Text)
	}
}

func TestSendErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "workflow failed", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Send(context.Background(), Turn{Audio: strings.NewReader("x")})

	var werr *WebhookError
	if !errors.As(err, &werr) {
		t.Fatalf("expected WebhookError, got %v", err)
	}
	if werr.StatusCode != http.StatusBadGateway || !strings.Contains(err.Error(), "workflow failed") {
		t.Fatalf("unexpected error %v", err)
	}

	if _, err := client.Send(context.Background(), Turn{}); err == nil {
		t.Fatalf("expected error without audio")
	}

	if _, err := NewClient("  ", nil).Send(context.Background(), Turn{Audio: strings.NewReader("x")}); !errors.Is(err, ErrNoWebhook) {
		t.Fatalf("expected ErrNoWebhook, got %v", err)
	}
}

func TestDecodeHeaderText(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                     "",
		"  plain text ":        "plain text",
		"Ol%C3%A1%2C%20tudo":   "Olá, tudo",
		"C++ rocks":            "C++ rocks",
		"100%":                 "100%",
	}
	for raw, want := range cases {
		if got := decodeHeaderText(raw); got != want {
			t.Fatalf("decodeHeaderText(%q) = %q, want %q", raw, got, want)
		}
	}
}

type fakeRunner struct {
	mu       sync.Mutex
	started  []string
	stopped  []string
	finished chan struct{}
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) error {
	f.mu.Lock()
	file := args[len(args)-1]
	f.started = append(f.started, name+" "+strings.Join(args, " "))
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.stopped = append(f.stopped, file)
		f.mu.Unlock()
		return ctx.Err()
	case <-f.finished:
		return nil
	}
}

func TestPlayerStopsPreviousPlayback(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := &fakeRunner{finished: make(chan struct{})}

	player := NewPlayer(fs, "/replies", "mpv --really-quiet {file}", zap.NewNop())
	player.run = runner.run
	player.now = func() time.Time { return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC) }

	first, err := player.Play(context.Background(), &Reply{Audio: []byte("one"), ContentType: "audio/mpeg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := player.Play(context.Background(), &Reply{Audio: []byte("two"), ContentType: "audio/mpeg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second || !strings.HasSuffix(first, "-001.mp3") || !strings.HasSuffix(second, "-002.mp3") {
		t.Fatalf("unexpected file names %q %q", first, second)
	}

	data, err := afero.ReadFile(fs, second)
	if err != nil || string(data) != "two" {
		t.Fatalf("unexpected saved audio %q (%v)", data, err)
	}

	close(runner.finished)
	if err := player.Wait(); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.stopped) != 1 || runner.stopped[0] != first {
		t.Fatalf("expected first playback stopped, got %v", runner.stopped)
	}
	if len(runner.started) != 2 || runner.started[1] != "mpv --really-quiet "+second {
		t.Fatalf("unexpected invocations %v", runner.started)
	}
}

func TestPlayerConcurrentPlaysLeaveOnePlayback(t *testing.T) {
	runner := &fakeRunner{finished: make(chan struct{})}
	player := NewPlayer(afero.NewMemMapFs(), "/replies", "mpv {file}", zap.NewNop())
	player.run = runner.run

	const plays = 8
	var wg sync.WaitGroup
	errs := make(chan error, plays)
	for i := range plays {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := player.Play(context.Background(), &Reply{Audio: []byte{byte(i)}, ContentType: "audio/mpeg"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	close(runner.finished)
	if err := player.Wait(); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.started) != plays || len(runner.stopped) != plays-1 {
		t.Fatalf("expected every playback but the last stopped: %d started, %d stopped", len(runner.started), len(runner.stopped))
	}
}

func TestPlayerWithoutCommandOnlySaves(t *testing.T) {
	fs := afero.NewMemMapFs()
	player := NewPlayer(fs, "replies", "", nil)

	path, err := player.Play(context.Background(), &Reply{Audio: []byte("ogg"), ContentType: "audio/ogg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, ".ogg") {
		t.Fatalf("unexpected path %q", path)
	}
	if err := player.Wait(); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	if _, err := player.Play(context.Background(), &Reply{}); err == nil {
		t.Fatalf("expected error for empty reply")
	}
}

package sportsdb

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"bbmi-data-export/internal/providers"
	"bbmi-data-export/internal/testutil"
)

func TestSearchTeamsBuildsURLAndMapsTeams(t *testing.T) {
	var captured *http.Request
	client := NewClient(Config{
		BaseURL: "https://api.example.com/json/",
		APIKey:  "key",
		HTTPClient: testutil.NewStubClient(func(req *http.Request) (*http.Response, error) {
			captured = req
			return testutil.Response(http.StatusOK, `{"teams":[
				{"idTeam":"1","strTeam":"Texas A&M","strSport":"Soccer","strBadge":"https://img/soccer.png"},
				{"idTeam":"2","strTeam":"Texas A&M","strSport":"Basketball","strTeamBadge":"https://img/old.png","strLogo":"https://img/logo.png"}
			]}`), nil
		}),
	})

	teams, err := client.SearchTeams(context.Background(), "Texas A&M")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if captured.URL.Path != "/json/key/searchteams.php" {
		t.Fatalf("unexpected path %s", captured.URL.Path)
	}
	if got := captured.URL.Query().Get("t"); got != "Texas A&M" {
		t.Fatalf("expected escaped team query, got %q (%s)", got, captured.URL.RawQuery)
	}
	if len(teams) != 2 || teams[1].ID != "2" || teams[1].Badge != "https://img/old.png" || teams[1].Logo != "https://img/logo.png" {
		t.Fatalf("unexpected teams %+v", teams)
	}
}

func TestSearchTeamsNullTeamsIsEmpty(t *testing.T) {
	client := NewClient(Config{HTTPClient: testutil.NewStubClient(func(req *http.Request) (*http.Response, error) {
		if !strings.HasPrefix(req.URL.String(), defaultBaseURL+"/"+defaultAPIKey+"/") {
			t.Fatalf("expected default base url and key, got %s", req.URL)
		}
		return testutil.Response(http.StatusOK, `{"teams":null}`), nil
	})})

	teams, err := client.SearchTeams(context.Background(), "Nowhere State")
	if err != nil || len(teams) != 0 {
		t.Fatalf("expected empty result, got %v %v", teams, err)
	}
}

func TestSearchTeamsRateLimited(t *testing.T) {
	client := NewClient(Config{HTTPClient: testutil.NewStubClient(func(*http.Request) (*http.Response, error) {
		resp := testutil.Response(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})})

	_, err := client.SearchTeams(context.Background(), "Duke")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.Provider != ProviderName || rl.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestSearchTeamsUnexpectedStatus(t *testing.T) {
	client := NewClient(Config{HTTPClient: testutil.NewStubClient(func(*http.Request) (*http.Response, error) {
		return testutil.Response(http.StatusBadGateway, strings.Repeat("x", 2000)), nil
	})})

	_, err := client.SearchTeams(context.Background(), "Duke")
	if err == nil || !strings.Contains(err.Error(), "unexpected status 502") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		t.Fatalf("502 should not be a rate limit error")
	}
	if len(err.Error()) > maxErrorBody+100 {
		t.Fatalf("expected body to be truncated, got %d bytes", len(err.Error()))
	}
}

func TestSearchTeamsDecodeAndTransportErrors(t *testing.T) {
	boom := errors.New("dial failed")
	client := NewClient(Config{HTTPClient: testutil.NewStubClient(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})})
	if _, err := client.SearchTeams(context.Background(), "Duke"); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}

	client = NewClient(Config{HTTPClient: testutil.NewStubClient(func(*http.Request) (*http.Response, error) {
		return testutil.Response(http.StatusOK, "<html>"), nil
	})})
	if _, err := client.SearchTeams(context.Background(), "Duke"); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDownloadLogo(t *testing.T) {
	client := NewClient(Config{HTTPClient: testutil.NewStubClient(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/ok.png":
			return testutil.Response(http.StatusOK, "PNGDATA"), nil
		case "/empty.png":
			return testutil.Response(http.StatusOK, ""), nil
		default:
			return testutil.Response(http.StatusNotFound, "missing"), nil
		}
	})})

	data, err := client.DownloadLogo(context.Background(), "https://img.example.com/ok.png")
	if err != nil || string(data) != "PNGDATA" {
		t.Fatalf("unexpected download %q %v", data, err)
	}
	if _, err := client.DownloadLogo(context.Background(), "https://img.example.com/empty.png"); err == nil {
		t.Fatalf("expected empty body error")
	}
	if _, err := client.DownloadLogo(context.Background(), "https://img.example.com/gone.png"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
	if _, err := client.DownloadLogo(context.Background(), " "); err == nil {
		t.Fatalf("expected empty url error")
	}
}

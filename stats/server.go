package stats

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/cogbench/cogbench/internal/timeutil"
	"github.com/cogbench/cogbench/store"
	"github.com/cogbench/cogbench/trial"
)

type TemplateData struct {
	StartTime string
	EndTime   string
	Results   string
	Days      int
}

type errorHandler func(w http.ResponseWriter, r *http.Request) error

func (h errorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h(w, r)
	if err != nil {
		pterm.Error.Println(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

//go:embed web/*
var web embed.FS

var tpl = template.Must(
	template.New("index.html").ParseFS(web, "web/index.html"),
)

type server struct {
	db store.DB
}

// queryResults loads the results selected by the request's query
// parameters. The default window is the trailing week.
func (s *server) queryResults(
	r *http.Request,
) ([]store.Result, time.Time, time.Time, error) {
	query := r.URL.Query()

	now := time.Now()

	startTime, err := time.ParseInLocation(
		"2006-01-02",
		query.Get("start_time"),
		now.Location(),
	)
	if err != nil {
		startTime = timeutil.RoundToStart(now.AddDate(0, 0, -6))
	}

	endTime, err := time.ParseInLocation(
		"2006-01-02",
		query.Get("end_time"),
		now.Location(),
	)
	if err != nil {
		endTime = now
	}

	endTime = timeutil.RoundToEnd(endTime)

	var games []trial.GameID

	if g := query.Get("game"); g != "" {
		for _, id := range strings.Split(g, ",") {
			games = append(games, trial.GameID(strings.TrimSpace(id)))
		}
	}

	results, err := s.db.GetResults(startTime, endTime, games)
	if err != nil {
		return nil, startTime, endTime, err
	}

	return results, startTime, endTime, nil
}

func (s *server) index(w http.ResponseWriter, r *http.Request) error {
	results, startTime, endTime, err := s.queryResults(r)
	if err != nil {
		return err
	}

	b, err := json.Marshal(results)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = tpl.Execute(&buf, &TemplateData{
		StartTime: startTime.Format(time.RFC3339Nano),
		EndTime:   endTime.Format(time.RFC3339Nano),
		Days: int(
			math.Round(endTime.Sub(startTime).Seconds() / (24 * 60 * 60)),
		),
		Results: string(b),
	})
	if err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())

	return err
}

func (s *server) data(w http.ResponseWriter, r *http.Request) error {
	results, _, _, err := s.queryResults(r)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(results)
}

// Server starts a local web server that reports game performance for
// browser viewing.
func Server(dB store.DB, port uint) error {
	mux := http.NewServeMux()

	s := &server{
		db: dB,
	}

	staticFS := http.FS(web)
	fs := http.FileServer(staticFS)

	mux.Handle("/web/", fs)
	mux.Handle("/data", errorHandler(s.data))
	mux.Handle("/", errorHandler(s.index))

	pterm.Info.Printfln("starting server on port: %d", port)

	//nolint:gosec // no timeout is ok
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

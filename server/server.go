// Package server exposes the blob-recovery pipeline over HTTP (POST /blob,
// plus a GET /ping health check): a thin adapter over field, ntt, blob
// and statediff that performs no decoding logic of its own.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/blob"
	"github.com/vocdoni/blobdiff/log"
	"github.com/vocdoni/blobdiff/ntt"
	"github.com/vocdoni/blobdiff/statediff"
)

// maxBlobBodyBytes bounds the request body the server will read for a
// single blob: comfortably above the exact expected hex length
// (field.BlobLen*64 bytes) without being unbounded.
const maxBlobBodyBytes = 1 << 20 // 1 MiB

// Config configures the HTTP server.
type Config struct {
	Host string
	Port int
}

// Server wraps a chi router serving the blob-recovery pipeline.
type Server struct {
	router *chi.Mux
}

// New builds a Server with all routes registered and starts it listening
// in the background.
func New(ctx context.Context, conf Config) (*Server, error) {
	s := &Server{router: chi.NewRouter()}
	s.initRouter()

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)
		log.Infow("starting blob-recovery server", "addr", addr)
		srv := &http.Server{Addr: addr, Handler: s.router}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("blob-recovery server failed: %v", err)
		}
	}()
	return s, nil
}

// Router returns the underlying chi router, for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) initRouter() {
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get(PingEndpoint, s.ping)
	s.router.Post(BlobEndpoint, s.recoverBlob)
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// recoverBlob implements POST /blob: the body is the raw blob hex
// string, the response body is the decoded StateDiffDocument as JSON
// on success, or a plain-text error with a 4xx/5xx status.
func (s *Server) recoverBlob(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBlobBodyBytes))
	if err != nil {
		httpWriteError(w, log.StageParse, apperr.Errorf(apperr.KindMalformedBlobLength, "failed to read request body: %v", err))
		return
	}

	doc, stage, err := recover(string(body))
	if err != nil {
		httpWriteError(w, stage, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := doc.WriteIndent(w); err != nil {
		log.Warnw("failed to write blob-recovery response", "error", err)
	}
}

// recover runs the full pipeline: parse blob hex, invert the NTT,
// decode the coefficient stream. On failure it reports which stage
// produced the error, so callers can log with precise context about
// where recovery broke down.
func recover(hexBlob string) (*statediff.Document, log.Stage, error) {
	b, err := blob.Parse(hexBlob)
	if err != nil {
		return nil, log.StageParse, err
	}
	coeffs, err := ntt.Recover(b)
	if err != nil {
		return nil, log.StageNTT, err
	}
	doc, err := statediff.Decode(coeffs)
	if err != nil {
		return nil, log.StageDecode, err
	}
	return doc, "", nil
}

func httpWriteError(w http.ResponseWriter, stage log.Stage, err error) {
	status := http.StatusInternalServerError
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
	}
	log.WithStage(stage).Warn().Err(err).Msg("blob recovery failed")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintln(w, err.Error())
}

package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/greet/app/server/auth"
)

const (
	msgNoName       = "이름이 제공되지 않았습니다."
	msgReadFailed   = "파일 읽기 실패: "
	msgRenderFailed = "페이지 렌더링 실패: "
	greetingPattern = "%s님 안녕하세요."
)

// dispatch routes the request: /login* always goes to login, a request with a valid
// session gets the greeting, everything else gets the static page.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/login") {
		s.handleLogin(w, r)
		return
	}
	if username, ok := auth.UserFromContext(r.Context()); ok {
		s.handleGreet(w, username)
		return
	}
	s.handlePage(w)
}

// handleLogin issues a login cookie for the name query parameter and redirects to the root page.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, msgNoName, http.StatusBadRequest)
		return
	}

	setCookie, err := s.Auth.Login(r.Context(), name)
	if err != nil {
		log.Printf("[WARN] failed to login %q: %v", name, err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	log.Printf("[INFO] user %q logged in", name)
	w.Header().Add("Set-Cookie", setCookie)
	w.Header().Set("Location", s.url("/"))
	w.WriteHeader(http.StatusFound)
}

// handleGreet greets the authenticated user.
func (s *Server) handleGreet(w http.ResponseWriter, username string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprintf(w, greetingPattern, username); err != nil {
		log.Printf("[WARN] failed to write greeting: %v", err)
	}
}

// pageData is passed to the page template. A plain html page without actions renders as is.
type pageData struct {
	BaseURL  string
	LoginURL string
}

// handlePage renders the page file, re-read on every request so edits show up without restart.
func (s *Server) handlePage(w http.ResponseWriter) {
	data, err := os.ReadFile(s.PageFile)
	if err != nil {
		log.Printf("[WARN] failed to read page %s: %v", s.PageFile, err)
		http.Error(w, msgReadFailed+err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	tmpl, err := template.New("page").Parse(string(data))
	if err == nil {
		err = tmpl.Execute(&buf, pageData{BaseURL: s.BaseURL, LoginURL: s.url("/login")})
	}
	if err != nil {
		log.Printf("[WARN] failed to render page %s: %v", s.PageFile, err)
		http.Error(w, msgRenderFailed+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write page: %v", err)
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/prayujt/distributed-streaming/internal/selection"
	"github.com/prayujt/distributed-streaming/internal/session"
)

var log = logging.MustGetLogger("log")

// Server wires the HTTP surface to the selection service and the
// download pipeline.
type Server struct {
	selection  *selection.Service
	store      *session.Store
	downloader *Downloader
}

// New creates the HTTP server facade.
func New(sel *selection.Service, store *session.Store, downloader *Downloader) *Server {
	return &Server{
		selection:  sel,
		store:      store,
		downloader: downloader,
	}
}

// Router builds the gin engine with the two routes. No authentication;
// the service runs until terminated.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/select", s.handleSelect)
	router.POST("/download", s.handleDownload)

	return router
}

// Run serves on the given port until the process is terminated.
func (s *Server) Run(port int) error {
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

type selectRequest struct {
	Titles string `json:"titles"`
	Type   string `json:"type"`
}

type selectResponse struct {
	SessionID string     `json:"session_id"`
	Choices   [][]string `json:"choices"`
}

// handleSelect runs the per-line catalog queries and returns the session
// id with the rendered previews. Failed lines were already dropped by
// the selection service, so this always answers 200 with whatever
// groups survived.
func (s *Server) handleSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	domain := selection.DomainMusic
	if req.Type == string(selection.DomainPodcast) {
		domain = selection.DomainPodcast
	}

	id, previews, err := s.selection.Select(c.Request.Context(), req.Titles, domain)
	if err != nil {
		c.JSON(http.StatusOK, "Failed to lock mutex")
		return
	}

	c.JSON(http.StatusOK, selectResponse{SessionID: id, Choices: previews})
}

type downloadRequest struct {
	SessionID string `json:"session_id"`
	Indices   []int  `json:"indices"`
}

// handleDownload consumes the session and launches the detached
// download pipeline. The response never reflects anything that happens
// after acceptance.
func (s *Server) handleDownload(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	groups, err := s.store.Take(req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusOK, "Session not found")
			return
		}
		c.JSON(http.StatusOK, "Failed to lock mutex")
		return
	}

	s.downloader.Start(groups, req.Indices)
	log.Infof("accepted download for session %s (%d indices)", req.SessionID, len(req.Indices))

	c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID})
}

package api

import (
	"bytes"
	"crypto/subtle"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/spellhub/internal/cards"
	"github.com/youruser/spellhub/internal/deck"
	imagepkg "github.com/youruser/spellhub/internal/image"
	"github.com/youruser/spellhub/internal/team"
)

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entities": s.catalog.Len()})
}

func (s *Server) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.BindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.Filter(s.catalog.Entities(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "entities": out})
}

func (s *Server) entityHandler(c *gin.Context) {
	e, ok := s.catalog.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entity": e, "patches": s.catalog.PatchesFor(e.EntityID)})
}

func (s *Server) patchesHandler(c *gin.Context) {
	if id := c.Query("entity"); id != "" {
		c.JSON(http.StatusOK, gin.H{"patches": s.catalog.PatchesFor(id)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patches": s.catalog.Patches()})
}

type encodeRequest struct {
	Name  string              `json:"name"`
	Decks []team.DeckIdentity `json:"decks"`
}

func (s *Server) encodeHandler(c *gin.Context) {
	var req encodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token := team.EncodeTeam(req.Decks, req.Name)
	link, err := team.ShareURL(s.cfg.ShareBaseURL, token)
	if err != nil {
		s.log.Error("share url", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "share url misconfigured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "url": link})
}

func (s *Server) decodeHandler(c *gin.Context) {
	id, ok := decodeParam(c)
	if !ok {
		return
	}
	t, missing := deck.TeamFromIdentity(s.catalog, id)
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"team":    id,
		"decks":   t.Decks,
		"missing": missing,
		"invalid": deckProblems(t),
		"token":   team.Encode(t.Identity()),
	})
}

// deckProblems maps deck index to its Validate error, for decks that fail.
func deckProblems(t deck.Team) map[int]string {
	out := map[int]string{}
	for i, d := range t.Decks {
		if err := d.Validate(); err != nil {
			out[i] = err.Error()
		}
	}
	return out
}

// export returns the team as plain text
func (s *Server) exportHandler(c *gin.Context) {
	id, ok := decodeParam(c)
	if !ok {
		return
	}
	t, _ := deck.TeamFromIdentity(s.catalog, id)
	c.String(http.StatusOK, deck.ExportTeamText(t))
}

// qr endpoint returns a PNG of the share link of a team token
func (s *Server) qrHandler(c *gin.Context) {
	id, ok := decodeParam(c)
	if !ok {
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	link, err := team.ShareURL(s.cfg.ShareBaseURL, team.Encode(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	b, err := imagepkg.GenerateQRPNG(link, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// team image: one row per deck plus the QR of the share link
func (s *Server) teamImageHandler(c *gin.Context) {
	id, ok := decodeParam(c)
	if !ok {
		return
	}
	t, _ := deck.TeamFromIdentity(s.catalog, id)

	art := imagepkg.TeamArt{Decks: make([]imagepkg.DeckArt, len(t.Decks))}
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(6)
	fetch := func(e *cards.Entity, dst *image.Image) {
		if e == nil || e.ImageURL == "" {
			return
		}
		g.Go(func() error {
			img, err := s.fetchImage(ctx, e.ImageURL)
			if err != nil {
				// best-effort: the tile stays a placeholder
				s.log.Warn("entity image", zap.String("entity", e.EntityID), zap.Error(err))
				return nil
			}
			*dst = img
			return nil
		})
	}
	for i, d := range t.Decks {
		fetch(d.Spellcaster, &art.Decks[i].Spellcaster)
		for j, e := range d.Slots {
			fetch(e, &art.Decks[i].Slots[j])
		}
	}
	_ = g.Wait()

	if link, err := team.ShareURL(s.cfg.ShareBaseURL, team.Encode(id)); err == nil {
		if q, err := imagepkg.GenerateQRImage(link, 400); err == nil {
			art.QR = q
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, imagepkg.ComposeTeamImage(art)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// RevalidateHeader carries the shared secret for /api/revalidate.
const RevalidateHeader = "X-Revalidate-Token"

func (s *Server) revalidateHandler(c *gin.Context) {
	if s.cfg.RevalidateSecret == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "revalidation disabled"})
		return
	}
	got := c.GetHeader(RevalidateHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.RevalidateSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	ds, err := s.loader.Load(c.Request.Context())
	if err != nil {
		s.log.Error("revalidate", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "dataset unavailable"})
		return
	}
	s.catalog.Replace(ds)
	s.log.Info("dataset revalidated", zap.Int("entities", len(ds.Entities)), zap.Int("patches", len(ds.Patches)))
	c.JSON(http.StatusOK, gin.H{"revalidated": true, "entities": len(ds.Entities)})
}

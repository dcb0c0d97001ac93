package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youruser/spellhub/internal/cards"
	"github.com/youruser/spellhub/internal/config"
	"github.com/youruser/spellhub/internal/team"
)

type stubLoader struct {
	ds  cards.Dataset
	err error
}

func (l stubLoader) Load(context.Context) (cards.Dataset, error) { return l.ds, l.err }

func testDataset() cards.Dataset {
	return cards.Dataset{
		Entities: []cards.Entity{
			{EntityID: "h1", Name: "Ashka", Category: cards.CategorySpellcaster},
			{EntityID: "u1", Name: "Ember Imp", Category: cards.CategoryUnit, Tags: []string{"flying"}},
			{EntityID: "u2", Name: "Stone Golem", Category: cards.CategoryUnit},
			{EntityID: "t1", Name: "Colossus", Category: cards.CategoryTitan},
		},
		Patches: []cards.Patch{
			{Version: "1.1", Changes: []cards.PatchChange{{EntityID: "u1", Note: "nerf"}}},
			{Version: "1.2", Changes: []cards.PatchChange{{EntityID: "t1", Note: "added"}}},
		},
	}
}

func newTestServer(t *testing.T, loader DatasetLoader) (*Server, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{ShareBaseURL: "https://decks.example/team", RevalidateSecret: "s3cret"}
	s := NewServer(cfg, cards.NewCatalog(testDataset()), loader, zap.NewNop())
	return s, s.Handler()
}

func do(h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, nil)
	w := do(h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestFilterAndEntity(t *testing.T) {
	_, h := newTestServer(t, nil)

	w := do(h, http.MethodPost, "/api/entities/filter", `{"categories":["unit"]}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])

	w = do(h, http.MethodPost, "/api/entities/filter", `{bad`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodGet, "/api/entities/u1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ember Imp", body["entity"].(map[string]any)["name"])
	assert.Len(t, body["patches"], 1)

	w = do(h, http.MethodGet, "/api/entities/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatches(t *testing.T) {
	_, h := newTestServer(t, nil)
	w := do(h, http.MethodGet, "/api/patches", "", nil)
	assert.Len(t, decodeBody(t, w)["patches"], 2)

	w = do(h, http.MethodGet, "/api/patches?entity=t1", "", nil)
	patches := decodeBody(t, w)["patches"].([]any)
	require.Len(t, patches, 1)
	assert.Equal(t, "1.2", patches[0].(map[string]any)["version"])
}

func TestEncodeThenDecode(t *testing.T) {
	_, h := newTestServer(t, nil)

	req := `{"name":"My Team","decks":[
		{"spellcaster_id":"h1","slot_ids":["u1","u2","","","t1"],"name":"D1"},
		{"spellcaster_id":"h1","slot_ids":["ghost"],"name":"D2"}
	]}`
	w := do(h, http.MethodPost, "/api/team/encode", req, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	token := body["token"].(string)
	require.True(t, strings.HasPrefix(token, team.VersionPrefix))

	link, err := url.Parse(body["url"].(string))
	require.NoError(t, err)
	assert.Equal(t, "decks.example", link.Host)
	assert.Equal(t, token, link.Query().Get(team.QueryParam))

	w = do(h, http.MethodGet, "/api/team/decode?"+link.RawQuery, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decodeBody(t, w)
	assert.Equal(t, "My Team", body["team"].(map[string]any)["name"])
	assert.Equal(t, []any{"ghost"}, body["missing"])
	decks := body["decks"].([]any)
	require.Len(t, decks, 3)
	first := decks[0].(map[string]any)
	assert.Equal(t, "Ashka", first["spellcaster"].(map[string]any)["name"])
}

func TestDecode_UnescapedPlus(t *testing.T) {
	_, h := newTestServer(t, nil)
	token := team.EncodeTeam([]team.DeckIdentity{{SpellcasterID: "h1"}}, "My Team")

	// Raw token in the query: any '+' arrives as a space after parsing.
	w := do(h, http.MethodGet, "/api/team/decode?team="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "My Team", decodeBody(t, w)["team"].(map[string]any)["name"])
}

func TestDecode_Failures(t *testing.T) {
	_, h := newTestServer(t, nil)

	cases := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{name: "missing", query: "", status: http.StatusBadRequest},
		{name: "legacy", query: "?team=abc123", status: http.StatusGone, code: "legacy_or_invalid"},
		{name: "corrupt", query: "?team=" + url.QueryEscape("v2~!!!"), status: http.StatusUnprocessableEntity, code: "corrupt_payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(h, http.MethodGet, "/api/team/decode"+tc.query, "", nil)
			assert.Equal(t, tc.status, w.Code)
			if tc.code != "" {
				assert.Equal(t, tc.code, decodeBody(t, w)["error"])
			}
		})
	}
}

func TestQRAndImage(t *testing.T) {
	_, h := newTestServer(t, nil)
	token := team.EncodeTeam([]team.DeckIdentity{{SpellcasterID: "h1", SlotIDs: [team.SlotCount]string{"u1"}}}, "")
	q := "?team=" + url.QueryEscape(token)

	w := do(h, http.MethodGet, "/api/team/qr"+q+"&size=200", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	w = do(h, http.MethodGet, "/api/team/image"+q, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)

	w = do(h, http.MethodGet, "/api/team/qr?team=legacy", "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestRevalidate(t *testing.T) {
	fresh := cards.Dataset{Entities: []cards.Entity{{EntityID: "new"}}}

	s, h := newTestServer(t, stubLoader{ds: fresh})
	w := do(h, http.MethodPost, "/api/revalidate", "", map[string]string{RevalidateHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(h, http.MethodPost, "/api/revalidate", "", map[string]string{RevalidateHeader: "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := s.catalog.Lookup("new")
	assert.True(t, ok)

	_, h = newTestServer(t, stubLoader{err: errors.New("offline")})
	w = do(h, http.MethodPost, "/api/revalidate", "", map[string]string{RevalidateHeader: "s3cret"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	s, _ = newTestServer(t, nil)
	s.cfg.RevalidateSecret = ""
	w = do(s.Handler(), http.MethodPost, "/api/revalidate", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDecode_ReportsInvalidDecks(t *testing.T) {
	_, h := newTestServer(t, nil)
	token := team.EncodeTeam([]team.DeckIdentity{
		{SpellcasterID: "h1", SlotIDs: [team.SlotCount]string{"u1", "", "", "", "t1"}},
		{SpellcasterID: "u1", SlotIDs: [team.SlotCount]string{"t1", "ghost"}},
	}, "")

	w := do(h, http.MethodGet, "/api/team/decode?team="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)

	invalid := body["invalid"].(map[string]any)
	assert.NotContains(t, invalid, "0")
	assert.Contains(t, invalid["1"], "not a spellcaster")
	assert.NotContains(t, invalid, "2")

	// The resolved token drops ids the catalog does not know.
	got, err := team.DecodeTeam(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, [team.SlotCount]string{"t1"}, got.Decks[1].SlotIDs)
}

func TestExport(t *testing.T) {
	_, h := newTestServer(t, nil)
	token := team.EncodeTeam([]team.DeckIdentity{
		{SpellcasterID: "h1", SlotIDs: [team.SlotCount]string{"u1", "", "", "", "t1"}, Name: "Burn"},
	}, "My Team")

	w := do(h, http.MethodGet, "/api/team/export?team="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "## My Team\n\n# Burn\nSpellcaster: Ashka\n1. Ember Imp")
	assert.Contains(t, w.Body.String(), "5. Colossus")

	w = do(h, http.MethodGet, "/api/team/export?team=legacy", "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

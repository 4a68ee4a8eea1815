package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/claimscore/domain"
	"golang.org/x/xerrors"
)

func do(t *testing.T, status int, data interface{}) (*httptest.ResponseRecorder, JsonResponse) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, status, data))
	var resp JsonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestMakeJsonResp(t *testing.T) {
	req := require.New(t)

	rec, resp := do(t, http.StatusOK, map[string]int{"a": 1})
	req.Equal(http.StatusOK, rec.Code)
	req.Equal(JsonResponseStatusSuccess, resp.Status)

	rec, resp = do(t, http.StatusInternalServerError, xerrors.Errorf("run failed: %w", domain.ErrPriceUnavailable))
	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.Equal(JsonResponseStatusFail, resp.Status)
	req.Contains(resp.Data, "price unavailable")

	rec, _ = do(t, http.StatusInternalServerError, domain.ErrNotFound)
	req.Equal(http.StatusNotFound, rec.Code)

	rec, _ = do(t, http.StatusInternalServerError, errors.New("boom"))
	req.Equal(http.StatusInternalServerError, rec.Code)
}

package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/delivery"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/dashboard"
	"github.com/x-xyz/claimscore/domain/enrichment"
	"golang.org/x/xerrors"
)

var met = metrics.New("dashboard.http")

type handler struct {
	dashboard dashboard.UseCase
}

func New(e *echo.Echo, us dashboard.UseCase) {
	h := &handler{
		dashboard: us,
	}

	g := e.Group("/dashboard")
	g.GET("", h.get)
	g.GET("/variants", h.variants)
	g.POST("/runs", h.start)
	g.GET("/runs/:runId", h.getRun)
}

type viewParams struct {
	SortBy       string `query:"sortBy" validate:"omitempty,oneof=price priceUsd claimable claimableUsd score offerUsd tokenId"`
	SortDir      string `query:"sortDir" validate:"omitempty,oneof=asc desc"`
	PriceMin     string `query:"priceMin" validate:"omitempty,numeric"`
	PriceMax     string `query:"priceMax" validate:"omitempty,numeric"`
	ClaimableMin string `query:"claimableMin" validate:"omitempty,numeric"`
	ClaimableMax string `query:"claimableMax" validate:"omitempty,numeric"`
	Page         int    `query:"page" validate:"gte=0"`
	PageSize     int    `query:"pageSize" validate:"gte=0,lte=100"`
}

func (p viewParams) toView() (dashboard.View, error) {
	v := dashboard.View{
		SortBy:   p.SortBy,
		SortDir:  p.SortDir,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	var err error
	if v.PriceMin, err = nullDecimal("priceMin", p.PriceMin); err != nil {
		return v, err
	}
	if v.PriceMax, err = nullDecimal("priceMax", p.PriceMax); err != nil {
		return v, err
	}
	if v.ClaimableMin, err = nullDecimal("claimableMin", p.ClaimableMin); err != nil {
		return v, err
	}
	if v.ClaimableMax, err = nullDecimal("claimableMax", p.ClaimableMax); err != nil {
		return v, err
	}
	return v, v.Validate()
}

func nullDecimal(name, s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, xerrors.Errorf("invalid %s %q: %w", name, s, domain.ErrBadParamInput)
	}
	return decimal.NewNullDecimal(d), nil
}

// RunResp is a run with its rows shaped by the requested view
type RunResp struct {
	RunId      uuid.UUID        `json:"runId"`
	Variant    string           `json:"variant"`
	State      enrichment.State `json:"state"`
	Reason     string           `json:"reason,omitempty"`
	Degraded   []string         `json:"degraded,omitempty"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
	// Page is only set for ready runs
	Page *dashboard.Page `json:"page,omitempty"`
}

func toRunResp(res *enrichment.Result, v dashboard.View) (*RunResp, error) {
	resp := &RunResp{
		RunId:      res.RunId,
		Variant:    res.Variant,
		State:      res.State,
		Reason:     res.Reason,
		Degraded:   res.Degraded,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	if res.State != enrichment.StateReady {
		return resp, nil
	}
	page, err := dashboard.Apply(res.Rows, v)
	if err != nil {
		return nil, err
	}
	resp.Page = page
	return resp, nil
}

// get
//
//	@Summary		Run the dashboard
//	@Description	Fetch listings, balances, offers and prices, then score every listing
//	@Tags			dashboard
//	@Produce		json
//	@Param			variant			query		string	false	"pipeline variant"	example(opensea)
//	@Param			sortBy			query		string	false	"sort column"		Enums(price, priceUsd, claimable, claimableUsd, score, offerUsd, tokenId)
//	@Param			sortDir			query		string	false	"sort direction"	Enums(asc, desc)
//	@Param			priceMin		query		string	false	"min listing price in native currency"
//	@Param			priceMax		query		string	false	"max listing price in native currency"
//	@Param			claimableMin	query		string	false	"min claimable quantity"
//	@Param			claimableMax	query		string	false	"max claimable quantity"
//	@Param			page			query		int		false	"page index from 0"
//	@Param			pageSize		query		int		false	"rows per page, max 100"	default(10)
//	@Success		200				{object}	RunResp
//	@Failure		400
//	@Failure		500
//	@Failure		503
//	@Router			/dashboard [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		viewParams
		Variant string `query:"variant"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p.viewParams); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	view, err := p.toView()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.dashboard.Run(ctx, p.Variant)
	if err != nil {
		met.BumpSum("run.failed", 1)
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	resp, err := toRunResp(res, view)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, resp)
}

// variants
//
//	@Summary	List pipeline variants
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	object{variants=[]string,default=string}
//	@Router		/dashboard/variants [get]
func (h *handler) variants(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"variants": h.dashboard.Variants(),
		"default":  h.dashboard.DefaultVariant(),
	})
}

// start
//
//	@Summary	Start a dashboard run
//	@Tags		dashboard
//	@Accept		json
//	@Produce	json
//	@Param		body	body		object{variant=string}	false	"pipeline variant"
//	@Success	202		{object}	RunResp
//	@Failure	400
//	@Failure	500
//	@Router		/dashboard/runs [post]
func (h *handler) start(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Variant string `json:"variant"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.dashboard.Start(ctx, p.Variant)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	resp, _ := toRunResp(res, dashboard.View{})
	return delivery.MakeJsonResp(c, http.StatusAccepted, resp)
}

// getRun
//
//	@Summary		Poll a dashboard run
//	@Description	Returns the run state, ready runs carry the requested page of rows
//	@Tags			dashboard
//	@Produce		json
//	@Param			runId			path		string	true	"run id"
//	@Param			sortBy			query		string	false	"sort column"		Enums(price, priceUsd, claimable, claimableUsd, score, offerUsd, tokenId)
//	@Param			sortDir			query		string	false	"sort direction"	Enums(asc, desc)
//	@Param			priceMin		query		string	false	"min listing price in native currency"
//	@Param			priceMax		query		string	false	"max listing price in native currency"
//	@Param			claimableMin	query		string	false	"min claimable quantity"
//	@Param			claimableMax	query		string	false	"max claimable quantity"
//	@Param			page			query		int		false	"page index from 0"
//	@Param			pageSize		query		int		false	"rows per page, max 100"	default(10)
//	@Success		200				{object}	RunResp
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/dashboard/runs/{runId} [get]
func (h *handler) getRun(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		viewParams
		RunId string `param:"runId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	runId, err := uuid.Parse(p.RunId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, xerrors.Errorf("invalid runId %q: %w", p.RunId, domain.ErrBadParamInput))
	}
	if err := c.Validate(p.viewParams); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	view, err := p.toView()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.dashboard.Get(ctx, runId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	resp, err := toRunResp(res, view)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, resp)
}

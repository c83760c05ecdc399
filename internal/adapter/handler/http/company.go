package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	Handler
	service port.Service
}

func NewCompanyHandler(service port.Service, logger *zap.Logger) (*CompanyHandler, error) {
	return &CompanyHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type companyRequest struct {
	Name      string `json:"name"`
	BIN       string `json:"bin"`
	Kind      string `json:"kind"`
	Category  string `json:"category"`
	RegStatus string `json:"reg_status"`
}

type companyResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	BIN       string    `json:"bin"`
	Kind      string    `json:"kind,omitempty"`
	Category  string    `json:"category,omitempty"`
	RegStatus string    `json:"reg_status"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func newCompanyResponse(company *domain.Company) companyResponse {
	return companyResponse{
		ID:        company.ID,
		Name:      company.Name,
		BIN:       company.BIN,
		Kind:      company.Kind,
		Category:  company.Category,
		RegStatus: company.RegStatus,
		Verified:  company.Verified,
		CreatedAt: company.CreatedAt,
	}
}

func (ch *CompanyHandler) CreateCompany(ctx *gin.Context) {
	req := companyRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	company := &domain.Company{
		Name:      req.Name,
		BIN:       req.BIN,
		Kind:      req.Kind,
		Category:  req.Category,
		RegStatus: req.RegStatus,
	}

	created, err := ch.service.CreateCompany(ctx, company)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccessWithStatus(ctx, newCompanyResponse(created), http.StatusCreated)
}

func (ch *CompanyHandler) GetCompany(ctx *gin.Context) {
	companyID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	company, err := ch.service.GetCompany(ctx, companyID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCompanyResponse(company))
}

type companyLookupResponse struct {
	BIN         string           `json:"bin"`
	ValidFormat bool             `json:"valid_format"`
	Registered  bool             `json:"registered"`
	Company     *companyResponse `json:"company,omitempty"`
}

// LookupCompanyByBIN answers both checksum validity and registry presence.
func (ch *CompanyHandler) LookupCompanyByBIN(ctx *gin.Context) {
	bin := ctx.Param("bin")

	lookup, err := ch.service.LookupCompanyByBIN(ctx, bin)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	resp := companyLookupResponse{
		BIN:         lookup.BIN,
		ValidFormat: lookup.ValidFormat,
		Registered:  lookup.Company != nil,
	}
	if lookup.Company != nil {
		company := newCompanyResponse(lookup.Company)
		resp.Company = &company
	}

	ch.handleSuccess(ctx, resp)
}

func (ch *CompanyHandler) ListCompanies(ctx *gin.Context) {
	search := ctx.Query("search")

	list, err := ch.service.ListCompanies(ctx, search)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	result := make([]companyResponse, 0, len(list))
	for _, company := range list {
		result = append(result, newCompanyResponse(company))
	}

	ch.handleSuccess(ctx, result)
}

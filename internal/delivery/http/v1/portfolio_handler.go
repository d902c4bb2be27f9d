package v1

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
}

func NewPortfolioHandler(public *gin.RouterGroup, portfolioUC domain.PortfolioUsecase) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC}

	portfolio := public.Group("/portfolio")
	{
		portfolio.GET("/profile", handler.Profile)
		portfolio.GET("/categories", handler.Categories)
		portfolio.GET("/projects", handler.ListProjects)
		portfolio.GET("/projects/:id", handler.GetProject)
		portfolio.GET("/skills", handler.Skills)
		portfolio.GET("/experience", handler.Experience)
	}
}

// Profile godoc
// @Summary      Get the portfolio owner's profile
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /portfolio/profile [get]
func (h *PortfolioHandler) Profile(c *gin.Context) {
	response.Success(c, http.StatusOK, "Profile retrieved", h.portfolioUC.Profile(c.Request.Context()))
}

// Categories godoc
// @Summary      List project categories
// @Description  "all" first, then each category in the order it first appears
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /portfolio/categories [get]
func (h *PortfolioHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, "Categories retrieved", h.portfolioUC.Categories(c.Request.Context()))
}

// ListProjects godoc
// @Summary      List projects
// @Tags         portfolio
// @Produce      json
// @Param        category  query     string  false  "Category filter, 'all' for every project"
// @Success      200       {object}  response.Response
// @Router       /portfolio/projects [get]
func (h *PortfolioHandler) ListProjects(c *gin.Context) {
	projects := h.portfolioUC.ListProjects(c.Request.Context(), c.Query("category"))
	response.Success(c, http.StatusOK, "Projects retrieved", projects)
}

// GetProject godoc
// @Summary      Get project details
// @Tags         portfolio
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /portfolio/projects/{id} [get]
func (h *PortfolioHandler) GetProject(c *gin.Context) {
	project, err := h.portfolioUC.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.Error(apperror.NotFound("Project not found"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Project retrieved", project)
}

// Skills godoc
// @Summary      List skills by category
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /portfolio/skills [get]
func (h *PortfolioHandler) Skills(c *gin.Context) {
	response.Success(c, http.StatusOK, "Skills retrieved", h.portfolioUC.Skills(c.Request.Context()))
}

// Experience godoc
// @Summary      List work history
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /portfolio/experience [get]
func (h *PortfolioHandler) Experience(c *gin.Context) {
	response.Success(c, http.StatusOK, "Experience retrieved", h.portfolioUC.Experience(c.Request.Context()))
}

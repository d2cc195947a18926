package handler

import (
	"io"
	"mime"
	"net/http"
	"net/url"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	"github.com/edusite/backend/internal/interfaces/http/middleware"
	"github.com/edusite/backend/internal/interfaces/web/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminPath is the admin page; every successful write redirects here
const AdminPath = "/admin"

// AdminHandler serves the product admin page and its write and delete actions
type AdminHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(productService *catalogapp.ProductService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    BaseHandler{logger: logger},
		productService: productService,
	}
}

// Load godoc
// @ID           listAdminProducts
// @Summary      List products
// @Description  Returns every product ordered by id. Browsers get the admin page; clients sending Accept: application/json get the listing.
// @Tags         admin
// @Produce      json,html
// @Param        edit query int false "Product to prefill the form with (HTML only)"
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /admin [get]
func (h *AdminHandler) Load(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, view.Draft{})
		return
	}

	if middleware.WantsJSON(c) {
		h.Success(c, products)
		return
	}

	page := h.page(c, products)
	if editID := c.Query("edit"); editID != "" {
		product, err := h.editTarget(c, editID)
		if err != nil {
			_, status, message := h.classify(c, err)
			page.Error = message
			c.HTML(status, view.AdminTemplate, page)
			return
		}
		page.Draft = view.DraftFromProduct(*product)
	}

	c.HTML(http.StatusOK, view.AdminTemplate, page)
}

// Write godoc
// @ID           saveAdminProduct
// @Summary      Create or update a product
// @Description  A non-empty id updates that product; otherwise a new product is created. Redirects to the admin page.
// @Tags         admin
// @Accept       x-www-form-urlencoded,mpfd
// @Produce      json,html
// @Param        id formData int false "Product to update"
// @Param        name formData string true "Name"
// @Param        brand formData string true "Brand"
// @Param        price formData string true "Price"
// @Param        originalPrice formData string true "Original price"
// @Param        imageUrl formData string true "Image URL"
// @Success      303
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /admin [post]
func (h *AdminHandler) Write(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, err, view.DraftFromInput(form.Input()))
		return
	}

	result, err := h.productService.Save(c.Request.Context(), form.Input())
	if err != nil {
		h.fail(c, err, view.DraftFromInput(form.Input()))
		return
	}

	h.log(c).Debug("Product saved",
		zap.Int64("product_id", result.Product.ID),
		zap.Bool("created", result.Created),
	)
	c.Redirect(http.StatusSeeOther, AdminPath)
}

// Delete godoc
// @ID           deleteAdminProduct
// @Summary      Delete a product
// @Description  Deletes the product named by the id form field and redirects to the admin page. POST /admin/delete is the same action for plain HTML forms.
// @Tags         admin
// @Accept       x-www-form-urlencoded,mpfd
// @Produce      json,html
// @Param        id formData int true "Product to delete"
// @Success      303
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /admin [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := parseBodyForm(c.Request); err != nil {
		h.BadRequest(c, "Invalid form body")
		return
	}

	var form DeleteProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, err, view.Draft{})
		return
	}

	id, err := catalogapp.ParseProductID(form.ID)
	if err != nil {
		h.fail(c, err, view.Draft{})
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, view.Draft{})
		return
	}

	c.Redirect(http.StatusSeeOther, AdminPath)
}

// editTarget loads the product named by ?edit
func (h *AdminHandler) editTarget(c *gin.Context, text string) (*catalogapp.ProductResponse, error) {
	id, err := catalogapp.ParseProductID(text)
	if err != nil {
		return nil, err
	}
	return h.productService.Get(c.Request.Context(), id)
}

// page builds the admin page for the current request
func (h *AdminHandler) page(c *gin.Context, products []catalogapp.ProductResponse) view.AdminPage {
	page := view.AdminPage{Products: products}
	if session := middleware.GetSession(c); session != nil {
		page.Username = session.Username
	}
	return page
}

// invalid answers a form that failed binding validation
func (h *AdminHandler) invalid(c *gin.Context, err error, draft view.Draft) {
	details := middleware.ValidationDetails(err)
	if middleware.WantsJSON(c) {
		if details == nil {
			h.BadRequest(c, "Invalid form body")
			return
		}
		h.ValidationError(c, details)
		return
	}

	page := h.pageWithListing(c, draft)
	page.Error = "Request validation failed"
	page.Details = details
	c.HTML(http.StatusBadRequest, view.AdminTemplate, page)
}

// fail answers a failed service call.
// JSON clients get the error envelope; browsers get the admin page with an error banner.
func (h *AdminHandler) fail(c *gin.Context, err error, draft view.Draft) {
	if middleware.WantsJSON(c) {
		h.HandleError(c, err)
		return
	}

	_, status, message := h.classify(c, err)
	page := h.pageWithListing(c, draft)
	page.Error = message
	c.HTML(status, view.AdminTemplate, page)
}

// pageWithListing reloads the listing for an error page; a failing store leaves it empty
func (h *AdminHandler) pageWithListing(c *gin.Context, draft view.Draft) view.AdminPage {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		products = nil
	}
	page := h.page(c, products)
	page.Draft = draft
	return page
}

// parseBodyForm reads a urlencoded body for methods net/http does not parse, such as DELETE.
// Multipart bodies are parsed by gin's binding for every method.
func parseBodyForm(r *http.Request) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return nil
	}
	if r.Body == nil || r.PostForm != nil {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != gin.MIMEPOSTForm {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return err
	}

	r.PostForm = values
	r.Form = make(url.Values, len(values))
	for k, v := range values {
		r.Form[k] = append(r.Form[k], v...)
	}
	for k, v := range r.URL.Query() {
		r.Form[k] = append(r.Form[k], v...)
	}
	return nil
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (c *Controller) formatProducts(products []models.Product, withRatings bool) []utils.ProductView {
	now := c.now()
	views := make([]utils.ProductView, 0, len(products))
	for _, p := range products {
		var ratings []float64
		if withRatings {
			ratings = utils.Ratings(p.Comments)
		}
		views = append(views, utils.FormatProduct(p, ratings, now))
	}
	return views
}

// GetProducts handles GET /products. An empty catalogue is a 404.
func (c *Controller) GetProducts(ctx *gin.Context) {
	products, err := c.store.ListProducts(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error fetching products", err)
		return
	}
	if len(products) == 0 {
		respondWithError(ctx, http.StatusNotFound, "No products found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, c.formatProducts(products, true))
}

// GetProduct handles GET /products/:id.
func (c *Controller) GetProduct(ctx *gin.Context) {
	raw := strings.TrimSpace(ctx.Param("id"))
	if raw == "" {
		respondWithError(ctx, http.StatusBadRequest, "ID is required", nil)
		return
	}
	id, ok := parseID(raw)
	if !ok {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	product, err := c.store.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		respondStoreError(ctx, err, "Product not found", "Error fetching product")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, utils.FormatProductDetail(*product, c.now()))
}

// GetProductsByIDs handles GET /products/ids?ids=1,2,3. Tokens that are not
// ids are dropped.
func (c *Controller) GetProductsByIDs(ctx *gin.Context) {
	ids := utils.ParseIDList(ctx.Query("ids"))
	if len(ids) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "At least one valid Product ID is required", nil)
		return
	}

	products, err := c.store.FindProductsByIDs(ctx.Request.Context(), ids)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error fetching products", err)
		return
	}
	if len(products) == 0 {
		respondWithError(ctx, http.StatusNotFound, "No products found for the given IDs", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, c.formatProducts(products, false))
}

// SearchProducts handles GET /products/search/:name.
func (c *Controller) SearchProducts(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Param("name"))
	if name == "" {
		respondWithError(ctx, http.StatusBadRequest, "Product name part is required", nil)
		return
	}

	products, err := c.store.SearchProducts(ctx.Request.Context(), name)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error fetching products", err)
		return
	}
	if len(products) == 0 {
		respondWithError(ctx, http.StatusNotFound, "No products found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, c.formatProducts(products, false))
}

// CheckSKU handles GET /products/sku?sku=. Only existence is reported.
func (c *Controller) CheckSKU(ctx *gin.Context) {
	sku := ctx.Query("sku")
	if sku == "" {
		respondWithError(ctx, http.StatusBadRequest, "SKU parameter is required.", nil)
		return
	}

	exists, err := c.store.SKUExists(ctx.Request.Context(), sku)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Error checking SKU.", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"exists": exists})
}

type uploadImageRequest struct {
	SkuCode  string `json:"sku_code" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
}

// UploadProductImage handles POST /products/upload-img. The file is already
// hosted; only its location is recorded.
func (c *Controller) UploadProductImage(ctx *gin.Context) {
	var req uploadImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "SKU and file path are required.", nil)
		return
	}

	product, err := c.store.FindProductBySKU(ctx.Request.Context(), req.SkuCode)
	if err != nil {
		respondStoreError(ctx, err, "Product with the given SKU does not exist.", "Something went wrong while saving file path to DB")
		return
	}

	image := models.ProductImage{ProductID: product.ID, ImageBlob: req.FilePath}
	if err := c.store.CreateProductImage(ctx.Request.Context(), &image); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Something went wrong while saving file path to DB", err)
		return
	}
	c.invalidateProducts(ctx)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "File path saved to DB", "id": image.ID})
}

// DeleteProductImage handles DELETE /products/upload-img?imageId=. The
// hosted file is removed best effort; the record is deleted either way.
func (c *Controller) DeleteProductImage(ctx *gin.Context) {
	raw := ctx.Query("imageId")
	if raw == "" {
		respondWithError(ctx, http.StatusBadRequest, "Image ID is required", nil)
		return
	}
	id, ok := parseID(raw)
	if !ok {
		respondWithError(ctx, http.StatusBadRequest, "Invalid image ID", nil)
		return
	}

	image, err := c.store.FindProductImage(ctx.Request.Context(), id)
	if err != nil {
		respondStoreError(ctx, err, "Image not found", "Failed to delete image")
		return
	}

	if objectID, ok := c.images.ObjectID(image.ImageBlob); ok {
		if err := c.images.Delete(ctx.Request.Context(), objectID); err != nil {
			log.Warn().Err(err).Str("object_id", objectID).Uint("image_id", id).Msg("failed to delete hosted image")
		}
	} else {
		log.Warn().Str("location", image.ImageBlob).Uint("image_id", id).Msg("no hosted object id in image location")
	}

	if err := c.store.DeleteProductImage(ctx.Request.Context(), id); err != nil {
		respondStoreError(ctx, err, "Image not found", "Failed to delete image")
		return
	}
	c.invalidateProducts(ctx)

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Image successfully deleted"})
}

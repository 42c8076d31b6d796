package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const csvTemplate = `category,name,description,price,popular,featured,available,image
Breakfast,Two Eggs Any Style,Two farm-fresh eggs cooked your way with home fries and toast,8.99,true,false,true,
Breakfast,Buttermilk Pancakes,Stack of three fluffy buttermilk pancakes with butter and maple syrup,9.99,false,false,true,
Burgers,Classic Cheeseburger,1/2 lb beef patty with American cheese lettuce tomato onion & pickles,12.99,true,false,true,
Burgers,The Mac Daddy,Double patty bacon cheddar caramelized onions special sauce,16.99,true,true,true,
`

const jsonTemplate = `{
  "categories": [
    {
      "name": "Breakfast",
      "description": "Served all day - just like the good ol' days",
      "icon": "sunrise",
      "items": [
        {
          "name": "Two Eggs Any Style",
          "description": "Two farm-fresh eggs cooked your way, served with home fries and toast",
          "price": 8.99,
          "popular": true,
          "featured": false,
          "available": true
        },
        {
          "name": "Buttermilk Pancakes",
          "description": "Stack of three fluffy buttermilk pancakes with butter and maple syrup",
          "price": 9.99,
          "popular": false,
          "featured": false,
          "available": true
        }
      ]
    },
    {
      "name": "Burgers & Sandwiches",
      "description": "Hand-pattied fresh daily, never frozen",
      "icon": "burger",
      "items": [
        {
          "name": "Classic Cheeseburger",
          "description": "1/2 lb beef patty with American cheese, lettuce, tomato, onion & pickles",
          "price": 12.99,
          "popular": true,
          "featured": false,
          "available": true
        },
        {
          "name": "The Mac Daddy",
          "description": "Double patty, bacon, cheddar, caramelized onions, special sauce. Our signature!",
          "price": 16.99,
          "popular": true,
          "featured": true,
          "available": true
        }
      ]
    }
  ]
}
`

// ImportMenu runs the import engine on an uploaded .json or .csv file.
// mode=replace discards the stored categories; anything else merges.
func (h *MenuHandler) ImportMenu(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file provided")
		return
	}
	mode := c.PostForm("mode")

	f, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "Could not read uploaded file")
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		badRequest(c, "Could not read uploaded file")
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	result, err := h.menu.ImportMenu(ctx, content, fileHeader.Filename, mode)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

// DownloadTemplate serves a blank import template, ?format=csv or json.
func (h *MenuHandler) DownloadTemplate(c *gin.Context) {
	if c.Query("format") == "csv" {
		c.Header("Content-Disposition", `attachment; filename="menu-template.csv"`)
		c.Data(http.StatusOK, "text/csv", []byte(csvTemplate))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="menu-template.json"`)
	c.Data(http.StatusOK, "application/json", []byte(jsonTemplate))
}

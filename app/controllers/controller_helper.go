package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/enfantsenjoie/eejsite/internal/pkg/usercontext"
	"github.com/enfantsenjoie/eejsite/internal/pkg/viewmodel"
)

// render wraps c.Render with the layout bindings every page needs: user
// context, flash payload and the CSRF token when the route carries one.
func render(c *fiber.Ctx, template string, title string, og *viewmodel.OpenGraph, data fiber.Map) error {
	userCtx := usercontext.GetUserContext(c)

	bind := fiber.Map{
		"Title":      title,
		"IsLoggedIn": userCtx.IsLoggedIn,
		"IsAdmin":    userCtx.IsAdmin,
		"Username":   userCtx.Username,
		"Flash":      flash.Get(c),
		"OG":         og,
	}
	if token, ok := c.Locals("csrf").(string); ok {
		bind["CSRFToken"] = token
	}
	for k, v := range data {
		bind[k] = v
	}

	return c.Render(template, bind, "layouts/main")
}

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(usercontext.KeyFromProtected); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// stripHTMLAndTruncate flattens body HTML into a short plain-text teaser
// for OpenGraph descriptions.
func stripHTMLAndTruncate(html string, maxLength int) string {
	text := strings.ReplaceAll(html, "<br>", " ")
	text = strings.ReplaceAll(text, "</p>", " ")

	var result strings.Builder
	var inTag bool
	for _, r := range text {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	stripped := strings.Join(strings.Fields(result.String()), " ")
	if len(stripped) <= maxLength {
		return stripped
	}

	return stripped[:maxLength]
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const languageCookieName = "lang"

var supportedLanguages = map[string]bool{"en": true, "fr": true}

// LanguageSwitcher persists a ?lang=en|fr query parameter into a cookie so
// clients keep their language across requests.
func LanguageSwitcher(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if lang := c.QueryParam("lang"); supportedLanguages[lang] {
			c.SetCookie(&http.Cookie{
				Name:     languageCookieName,
				Value:    lang,
				Path:     "/",
				MaxAge:   365 * 24 * 3600,
				HttpOnly: false,
			})
			c.Response().Header().Set("Content-Language", lang)
		} else {
			c.Response().Header().Set("Content-Language", LanguageFromRequest(c))
		}
		return next(c)
	}
}

func LanguageFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(languageCookieName); err == nil && supportedLanguages[cookie.Value] {
		return cookie.Value
	}
	return "en"
}

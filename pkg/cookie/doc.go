// Package cookie reads and writes HTTP cookies with shared attributes.
//
//	m := cookie.New(
//		cookie.WithSecure(true),
//		cookie.WithHTTPOnly(false), // readable by the cookie banner script
//	)
//	m.Set(w, "gl_cookie_consent", "1", 180*24*60*60)
//
//	if m.Has(r, "gl_cookie_consent") {
//		// hide the banner
//	}
//
// Defaults: Path "/", HttpOnly, SameSite=Lax.
package cookie

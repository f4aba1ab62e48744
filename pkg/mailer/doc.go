// Package mailer sends templated email through a pluggable transport.
//
// Sending is split from rendering: a Sender delivers a prepared Email, a
// Renderer turns a markdown template with YAML front matter into HTML and
// plain text, and Mailer ties the two together.
//
//	renderer := mailer.NewRendererWithConfig(web.Mail(), mailer.RendererConfig{})
//	m := mailer.New(sender, renderer, mailer.Config{DefaultLayout: "base.html"})
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "contact@example.fr",
//		Template: "contact.md",
//		ReplyTo:  mailer.Recipient(sub.Name, sub.Email),
//		Data:     sub,
//	})
//
// # Templates
//
//	---
//	Subject: "[Site] {{.Subject}}"
//	---
//	Message de **{{.Name}}**
//
// The Subject field is itself a template. Converted markdown is sanitized
// before it reaches the layout, so interpolated user input cannot add markup.
//
// # Transports
//
// The smtp and resend subpackages provide Sender implementations. Transports
// that only speak plain text use Email.Text and ignore Email.HTML.
package mailer

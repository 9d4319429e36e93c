package auth

import "html/template"

// emailLayout is shared by every auth email; only the copy and the link change
var emailLayout = template.Must(template.New("auth-email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #3B82F6, #1E40AF); padding: 40px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 28px;">{{.Banner}}</h1>
    <p style="color: #E5E7EB; margin: 10px 0 0 0;">{{.Tagline}}</p>
  </div>
  <div style="padding: 40px; background: white;">
    <h2 style="color: #1F2937; margin-bottom: 20px;">{{.Heading}}</h2>
    <p style="color: #6B7280; line-height: 1.6; margin-bottom: 30px;">{{.Body}}</p>
    <div style="text-align: center; margin: 40px 0;">
      <a href="{{.Link}}" style="background: #3B82F6; color: white; padding: 14px 28px; text-decoration: none; border-radius: 8px; font-weight: 600; display: inline-block;">{{.Button}}</a>
    </div>
    <p style="color: #9CA3AF; font-size: 14px; margin-top: 30px;">{{.Footer}}</p>
  </div>
</div>
`))

type emailContent struct {
	Subject string
	Banner  string
	Tagline string
	Heading string
	Body    string
	Button  string
	Footer  string
	// LinkPath is appended to the base URL; LinkType, when set, becomes the type parameter
	LinkPath string
	LinkType string
	Link     string
}

var emailContents = map[EmailType]emailContent{
	EmailTypeSignup: {
		Subject:  "Confirm your email - TranscriptIQ",
		Banner:   "Welcome to TranscriptIQ!",
		Tagline:  "Interview Analysis Platform",
		Heading:  "Confirm your email address",
		Body:     "Thank you for signing up! Please click the button below to confirm your email address and complete your registration.",
		Button:   "Confirm Email Address",
		Footer:   "If you didn't create an account with TranscriptIQ, you can safely ignore this email.",
		LinkPath: "/auth/confirm",
		LinkType: "signup",
	},
	EmailTypeRecovery: {
		Subject:  "Reset your password - TranscriptIQ",
		Banner:   "Password Reset",
		Tagline:  "TranscriptIQ",
		Heading:  "Reset your password",
		Body:     "You requested a password reset for your TranscriptIQ account. Click the button below to set a new password.",
		Button:   "Reset Password",
		Footer:   "If you didn't request a password reset, you can safely ignore this email.",
		LinkPath: "/auth/reset-password",
	},
	EmailTypeMagicLink: {
		Subject:  "Sign in to TranscriptIQ",
		Banner:   "Sign In",
		Tagline:  "TranscriptIQ",
		Heading:  "Sign in to your account",
		Body:     "Click the button below to sign in to your TranscriptIQ account.",
		Button:   "Sign In",
		Footer:   "This link will expire in 1 hour for security reasons.",
		LinkPath: "/auth/confirm",
		LinkType: "magiclink",
	},
}

package email

// Templates for storefront notifications. Kept minimal: a shared base wraps
// per-event content blocks.

const BaseTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #f97316 0%, #ea580c 100%); padding: 30px; border-radius: 10px; text-align: center;">
    <h1 style="color: white; margin: 0;">{{.Title}}</h1>
  </div>
  <div style="background: #f9fafb; padding: 30px; border-radius: 10px; margin-top: 20px;">
    {{.Content}}
  </div>
  <div style="text-align: center; margin-top: 20px; color: #9ca3af; font-size: 14px;">
    <p>This email was sent automatically.</p>
  </div>
</div>`

const WelcomeTemplate = `
<h2 style="color: #1f2937;">Hello {{.Username}}!</h2>
<p style="color: #4b5563; font-size: 16px; line-height: 1.6;">
  Your account has been created. You can now buy items in the market and
  they will be delivered to you on the game server.
</p>
<div style="text-align: center; margin-top: 30px;">
  <a href="{{.BaseURL}}/market"
     style="background: #f97316; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; display: inline-block; font-weight: bold;">
    Browse the Market
  </a>
</div>`

const OrderConfirmationTemplate = `
<h2 style="color: #1f2937;">Thanks for your purchase, {{.Username}}!</h2>
<p style="color: #4b5563; font-size: 16px; line-height: 1.6;">
  Your order for <strong>{{.ProductName}}</strong> has been received and will
  be delivered on the game server shortly.
</p>
<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #f97316;">
  <p style="color: #4b5563; margin: 4px 0;">Order ID: <strong>{{.OrderID}}</strong></p>
  <p style="color: #4b5563; margin: 4px 0;">Price: <strong>{{.Amount}} credits</strong></p>
</div>`

const CreditAddedTemplate = `
<h2 style="color: #1f2937;">Hello {{.Username}}!</h2>
<p style="color: #4b5563; font-size: 16px; line-height: 1.6;">
  <strong>{{.Amount}} credits</strong> have been added to your account.
</p>
<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #f97316;">
  <p style="color: #4b5563; margin: 4px 0;">Reason: {{.Reason}}</p>
  <p style="color: #4b5563; margin: 4px 0;">New balance: <strong>{{.NewBalance}} credits</strong></p>
</div>`

const PasswordResetTemplate = `
<h2 style="color: #1f2937;">Hello {{.Username}}!</h2>
<p style="color: #4b5563; font-size: 16px; line-height: 1.6;">
  We received a request to reset your password. The link below is valid for
  one hour and can be used once.
</p>
<div style="text-align: center; margin-top: 30px;">
  <a href="{{.BaseURL}}/auth/reset-password?token={{.Token}}"
     style="background: #f97316; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; display: inline-block; font-weight: bold;">
    Reset Password
  </a>
</div>
<p style="color: #9ca3af; font-size: 14px; margin-top: 20px;">
  If you did not request this, you can safely ignore this email.
</p>`

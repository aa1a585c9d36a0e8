package mail

import "fmt"

// Email carries one rendered transactional message. HTML and Text are
// always both set; the transport sends them as multipart/alternative.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

const emailStyle = `body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: white; padding: 30px; border: 1px solid #ddd; }
.button { display: inline-block; padding: 12px 30px; background: %s; color: white; text-decoration: none; border-radius: 25px; margin: 20px 0; }
.footer { background: #f8f9fa; padding: 20px; text-align: center; border-radius: 0 0 10px 10px; color: #666; }`

// BuildVerificationEmail renders the registration mail pointing at
// {frontend}/verify-email?token=...
func BuildVerificationEmail(username, frontendURL, token string) Email {
	link := fmt.Sprintf("%s/verify-email?token=%s", frontendURL, token)
	style := fmt.Sprintf(emailStyle, "#667eea")

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Verifikasi Email - Aku Kesepian</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>💕 Aku Kesepian 💕</h1>
    <p>Selamat datang di dunia tanpa kesepian!</p>
  </div>
  <div class="content">
    <h2>Halo %s! 👋</h2>
    <p>Terima kasih sudah mendaftar di <strong>Aku Kesepian</strong>! Aplikasi yang akan menemanimu dengan AI yang bisa berperan sebagai pacar, keluarga, sahabat, dan karakter lainnya.</p>
    <p>Untuk mulai menggunakan aplikasi, silakan verifikasi email kamu dengan klik tombol di bawah ini:</p>
    <div style="text-align: center;">
      <a href="%s" class="button">Verifikasi Email Sekarang 💌</a>
    </div>
    <p>Atau copy link berikut ke browser kamu:</p>
    <p style="background: #f8f9fa; padding: 10px; border-radius: 5px; word-break: break-all; font-family: monospace;">%s</p>
    <p>Kamu tidak akan kesepian lagi! 🤗</p>
  </div>
  <div class="footer">
    <p>Link verifikasi ini akan kedaluwarsa dalam 1 jam.</p>
    <p>Jika kamu tidak mendaftar di Aku Kesepian, abaikan email ini.</p>
    <p><strong>Aku Kesepian</strong> - Your AI Companion 💕</p>
  </div>
</div>
</body>
</html>`, style, username, link, link)

	text := fmt.Sprintf(`Selamat Datang di Aku Kesepian! 💕

Halo %s!

Terima kasih sudah mendaftar di Aku Kesepian! Untuk mulai menggunakan aplikasi,
silakan verifikasi email kamu dengan mengunjungi link berikut:

%s

Kamu tidak akan kesepian lagi!

Link verifikasi ini akan kedaluwarsa dalam 1 jam.
Jika kamu tidak mendaftar di Aku Kesepian, abaikan email ini.

Aku Kesepian - Your AI Companion 💕`, username, link)

	return Email{
		Subject: "Selamat Datang di Aku Kesepian! 💕",
		HTML:    html,
		Text:    text,
	}
}

// BuildPasswordResetEmail renders the reset mail pointing at
// {frontend}/reset-password?token=...
func BuildPasswordResetEmail(username, frontendURL, token string) Email {
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	style := fmt.Sprintf(emailStyle, "#dc3545")

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reset Password - Aku Kesepian</title>
<style>%s
.warning { background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 5px; margin: 20px 0; }</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>🔐 Reset Password</h1>
    <p>Aku Kesepian</p>
  </div>
  <div class="content">
    <h2>Halo %s! 👋</h2>
    <p>Kami menerima permintaan untuk reset password akun kamu di <strong>Aku Kesepian</strong>.</p>
    <p>Klik tombol di bawah ini untuk membuat password baru:</p>
    <div style="text-align: center;">
      <a href="%s" class="button">Reset Password Sekarang 🔐</a>
    </div>
    <p>Atau copy link berikut ke browser kamu:</p>
    <p style="background: #f8f9fa; padding: 10px; border-radius: 5px; word-break: break-all; font-family: monospace;">%s</p>
    <div class="warning">
      <strong>⚠️ Penting:</strong>
      <ul>
        <li>Link reset ini hanya berlaku selama 1 jam</li>
        <li>Link hanya bisa digunakan sekali</li>
        <li>Jika bukan kamu yang meminta reset, abaikan email ini</li>
      </ul>
    </div>
  </div>
  <div class="footer">
    <p>Jika kamu tidak meminta reset password, abaikan email ini.</p>
    <p>Password kamu akan tetap aman dan tidak berubah.</p>
    <p><strong>Aku Kesepian</strong> - Your AI Companion 💕</p>
  </div>
</div>
</body>
</html>`, style, username, link, link)

	text := fmt.Sprintf(`Reset Password - Aku Kesepian 🔐

Halo %s!

Kami menerima permintaan untuk reset password akun kamu di Aku Kesepian.

Klik link berikut untuk membuat password baru:
%s

PENTING:
- Link reset ini hanya berlaku selama 1 jam
- Link hanya bisa digunakan sekali
- Jika bukan kamu yang meminta reset, abaikan email ini

Jika kamu tidak meminta reset password, abaikan email ini.
Password kamu akan tetap aman dan tidak berubah.

Aku Kesepian - Your AI Companion 💕`, username, link)

	return Email{
		Subject: "Reset Password - Aku Kesepian 🔐",
		HTML:    html,
		Text:    text,
	}
}

package helpers

import (
	"fmt"
)

func BuildVerificationHTML(name, link string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#2d74da; margin-top:0;">Подтверждение почты</h2>
                <div style="font-size:16px; color:#222;">Здравствуйте, %s!</div>
                <p style="margin:24px 0;">
                  Для подтверждения вашей электронной почты нажмите кнопку ниже:
                </p>
                <p>
                  <a href="%s" style="display:inline-block;padding:12px 24px;background:#2d74da;color:#fff;text-decoration:none;border-radius:5px;font-weight:bold;">
                    Подтвердить почту
                  </a>
                </p>
                <p style="font-size:13px;color:#666;">Ссылка действует 24 часа.</p>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">Если вы не регистрировались на сайте, просто проигнорируйте это письмо.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, name, link)
}

func BuildPasswordResetHTML(name, link string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#c53030; margin-top:0;">Сброс пароля</h2>
                <div style="font-size:16px; color:#222;">Здравствуйте, %s!</div>
                <p style="margin:24px 0;">
                  Мы получили запрос на сброс пароля. Чтобы задать новый пароль, нажмите кнопку ниже:
                </p>
                <p>
                  <a href="%s" style="display:inline-block;padding:12px 24px;background:#c53030;color:#fff;text-decoration:none;border-radius:5px;font-weight:bold;">
                    Сбросить пароль
                  </a>
                </p>
                <p style="font-size:13px;color:#666;">Ссылка действует 1 час.</p>
                <hr style="margin:32px 0 16px 0; border:0; border-top:1px solid #eee;">
                <div style="font-size:12px; color:#999;">Если вы не запрашивали сброс — просто проигнорируйте это письмо.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, name, link)
}

func BuildVerifySuccessHTML() string {
	return `
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#2d9a4a; margin-top:0;">Почта подтверждена</h2>
                <div style="font-size:16px; color:#222;">Ваш e-mail успешно подтверждён. Теперь вы можете войти в аккаунт.</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`
}

func BuildVerifyErrorHTML(msg string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family:Arial,sans-serif; background:#f9f9f9;">
    <table width="100%%" cellpadding="0" cellspacing="0" bgcolor="#f9f9f9">
      <tr>
        <td align="center" style="padding:32px 0;">
          <table width="500" bgcolor="#fff" cellpadding="24" cellspacing="0" style="border-radius:8px; box-shadow:0 1px 6px #eee;">
            <tr>
              <td>
                <h2 style="color:#c53030; margin-top:0;">Ошибка подтверждения</h2>
                <div style="font-size:16px; color:#222;">%s</div>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`, msg)
}

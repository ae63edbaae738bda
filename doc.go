/*
Package pom structures browser end-to-end tests with the Page Object Model
pattern on top of the Selenium WebDriver client.

A page object bundles the locators and user-facing actions of one logical
page of the application under test. All low-level element interaction goes
through a shared Base, so individual page objects contain nothing but
locator constants and named actions:

	type LoginPage struct {
		base *pom.Base
	}

	var (
		userField   = pom.ID("username")
		passField   = pom.ID("password")
		loginButton = pom.CSS("button[type=submit]")
	)

	func NewLoginPage(base *pom.Base) interface{} {
		return &LoginPage{base: base}
	}

	func (p *LoginPage) LogIn(user, password string) error {
		if err := p.base.Fill(userField, user); err != nil {
			return err
		}
		if err := p.base.Fill(passField, password); err != nil {
			return err
		}
		return p.base.Click(loginButton)
	}

A Browser owns the WebDriver session and hands out memoized page objects:

	cfg := pom.FromEnv()
	b, err := pom.New(cfg)
	if err != nil {
		// handle error
	}
	defer b.Quit()

	b.Navigate()
	p, _ := b.Page("login", NewLoginPage)
	p.(*LoginPage).LogIn("gopher", "hunter2")

The session is configured through BASE_URL, SELENIUM_URL, BROWSER and
HEADLESS, each with a usable default; see Config.
*/
package pom

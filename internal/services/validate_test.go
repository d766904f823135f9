package services

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"валидный", "Secret123!", true},
		{"короткий", "Se1!", false},
		{"без заглавной", "secret123!", false},
		{"без строчной", "SECRET123!", false},
		{"без цифры", "SecretABC!", false},
		{"без спецсимвола", "Secret1234", false},
		{"пустой", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidatePassword(tc.password)
			if tc.valid && len(errs) > 0 {
				t.Fatalf("пароль %q отклонён: %v", tc.password, errs)
			}
			if !tc.valid && len(errs) == 0 {
				t.Fatalf("пароль %q принят, а не должен", tc.password)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name  string
		uname string
		email string
		pass  string
		valid bool
	}{
		{"валидный латиницей", "Ada Lovelace", "ada@example.com", "Secret123!", true},
		{"валидный кириллицей", "Ада Лавлейс", "ada@example.com", "Secret123!", true},
		{"имя из одного символа", "А", "ada@example.com", "Secret123!", false},
		{"имя с цифрами", "Ada99", "ada@example.com", "Secret123!", false},
		{"email без @", "Ada Lovelace", "ada.example.com", "Secret123!", false},
		{"email без домена", "Ada Lovelace", "ada@", "Secret123!", false},
		{"слабый пароль", "Ada Lovelace", "ada@example.com", "weak", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRegistration(tc.uname, tc.email, tc.pass)
			if tc.valid && err != nil {
				t.Fatalf("валидный вход отклонён: %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("невалидный вход принят")
			}
		})
	}
}

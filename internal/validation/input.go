package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinNameLength           = 2
	MaxNameLength           = 100
	MinJobTitleLength       = 3
	MaxJobTitleLength       = 200
	MinJobDescriptionLength = 10
	MaxJobDescriptionLength = 5000
	MinQuoteMessageLength   = 1
	MaxQuoteMessageLength   = 2000
	MaxBioLength            = 1000
	MaxCommentLength        = 2000
	MaxMessageLength        = 5000
	MaxServiceLength        = 50
	MaxServicesCount        = 30
	MinQuotePrice           = 0.0
	MaxQuotePrice           = 1000000.0
	MaxWeeklyBudget         = 100000.0
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	zipcodeRegex     = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
	slugRegex        = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateZipcode проверяет почтовый индекс (форматы 12345 и 12345-6789).
func ValidateZipcode(zipcode string) error {
	if zipcode == "" {
		return fmt.Errorf("индекс обязателен")
	}
	if !zipcodeRegex.MatchString(zipcode) {
		return fmt.Errorf("некорректный формат индекса")
	}
	return nil
}

// ValidateRole проверяет роль при регистрации; admin этим путём не создаётся.
func ValidateRole(role string) error {
	if role != "customer" && role != "pro" {
		return fmt.Errorf("роль должна быть customer или pro")
	}
	return nil
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("рейтинг должен быть от 1 до 5")
	}
	return nil
}

// ValidateQuotePrice проверяет цену отклика.
func ValidateQuotePrice(price float64) error {
	if price <= MinQuotePrice {
		return fmt.Errorf("цена должна быть положительной")
	}
	if price > MaxQuotePrice {
		return fmt.Errorf("цена не может превышать %.0f", MaxQuotePrice)
	}
	return nil
}

// ValidateWeeklyBudget проверяет недельный бюджет мастера.
func ValidateWeeklyBudget(budget float64) error {
	if budget < 0 {
		return fmt.Errorf("бюджет не может быть отрицательным")
	}
	if budget > MaxWeeklyBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxWeeklyBudget)
	}
	return nil
}

// ValidateServices проверяет массив услуг мастера.
func ValidateServices(services []string) error {
	if len(services) > MaxServicesCount {
		return fmt.Errorf("количество услуг не может превышать %d", MaxServicesCount)
	}

	seen := make(map[string]bool)
	for _, service := range services {
		service = strings.TrimSpace(service)
		if service == "" {
			return fmt.Errorf("услуга не может быть пустой")
		}
		if utf8.RuneCountInString(service) > MaxServiceLength {
			return fmt.Errorf("услуга не может быть длиннее %d символов", MaxServiceLength)
		}
		key := strings.ToLower(service)
		if seen[key] {
			return fmt.Errorf("услуги не должны повторяться")
		}
		seen[key] = true
	}
	return nil
}

// ValidateCategorySlug проверяет машинное имя категории.
func ValidateCategorySlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug категории обязателен")
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug может содержать только строчные буквы, цифры, дефис и подчеркивание")
	}
	return nil
}

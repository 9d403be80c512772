package domain

import "fmt"

// Locale selects the phrase table used for reminder bodies.
type Locale string

const (
	LocaleKorean   Locale = "ko"
	LocaleEnglish  Locale = "en"
	LocaleJapanese Locale = "jp"
	LocaleChinese  Locale = "cn"
	LocaleSpanish  Locale = "es"

	DefaultLocale = LocaleKorean
)

// ParseLocale maps a page language code to a Locale. An empty code selects
// DefaultLocale.
func ParseLocale(code string) (Locale, error) {
	switch l := Locale(code); l {
	case "":
		return DefaultLocale, nil
	case LocaleKorean, LocaleEnglish, LocaleJapanese, LocaleChinese, LocaleSpanish:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, code)
	}
}

// ReminderBody renders the notification body for an exam diffDays away.
func (l Locale) ReminderBody(subject string, diffDays int) (string, error) {
	if diffDays == 0 {
		return l.todayExam(subject)
	}
	return l.upcomingExam(subject, diffDays)
}

func (l Locale) todayExam(subject string) (string, error) {
	switch l {
	case LocaleKorean:
		return fmt.Sprintf("%s 시험이 오늘이다! 박살내버려!", subject), nil
	case LocaleEnglish:
		return fmt.Sprintf("%s exam is today! Crush it!", subject), nil
	case LocaleJapanese:
		return fmt.Sprintf("%s試験が今日です！粉砕しろ！", subject), nil
	case LocaleChinese:
		return fmt.Sprintf("%s考试就是今天！摧毁它！", subject), nil
	case LocaleSpanish:
		return fmt.Sprintf("¡El examen de %s es hoy! ¡Aplástalo!", subject), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, string(l))
	}
}

func (l Locale) upcomingExam(subject string, days int) (string, error) {
	switch l {
	case LocaleKorean:
		return fmt.Sprintf("%s 시험 D-%d 남았다! 긴장의 끈을 놓지 마!", subject, days), nil
	case LocaleEnglish:
		return fmt.Sprintf("%s exam in D-%d days! Don't let your guard down!", subject, days), nil
	case LocaleJapanese:
		return fmt.Sprintf("%s試験D-%d日残っています！気を抜くな！", subject, days), nil
	case LocaleChinese:
		return fmt.Sprintf("%s考试还有D-%d天！不要放松警惕！", subject, days), nil
	case LocaleSpanish:
		return fmt.Sprintf("¡Faltan D-%d días para el examen de %s! ¡No bajes la guardia!", days, subject), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, string(l))
	}
}

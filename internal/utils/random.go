package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// GenerateRandomUser 生成一个随机的测试用户，用户名带上 prefix 方便之后批量清理
func GenerateRandomUser(password string, emailDomainName string, prefix string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := prefix + GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		IsActive:     true,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var shiftCodes = []domain.ShiftCode{
	domain.ShiftDay,
	domain.ShiftEvening,
	domain.ShiftOvernightStart,
	domain.ShiftOvernightNone,
}

// GenerateRandomStatus 随机生成一个合法的状态：A、NA 或者一到若干个班次代号的组合
func GenerateRandomStatus() domain.Status {
	switch rand.Intn(3) {
	case 0:
		return domain.Available()
	case 1:
		return domain.NotAvailable()
	default:
		n := rand.Intn(len(shiftCodes)) + 1
		codes := append([]domain.ShiftCode{}, shiftCodes...)
		for i := len(codes) - 1; i > 0; i-- {
			j := rand.Intn(i + 1)
			codes[i], codes[j] = codes[j], codes[i]
		}
		return domain.Shifts(codes[:n]...)
	}
}

// GenerateRandomMonthEntries 为某个用户随机生成一个月的可用状态记录
// 每一天都有记录，状态随机
func GenerateRandomMonthEntries(userID int64, month time.Time, now time.Time) []*domain.AvailabilityEntry {
	days := roster.MonthDays(month)

	entries := make([]*domain.AvailabilityEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, &domain.AvailabilityEntry{
			UserID:         userID,
			Date:           day.Format(roster.DateLayout),
			Status:         GenerateRandomStatus(),
			EffectiveStart: now,
			EffectiveEnd:   domain.EffectiveEndOpen,
			CreatedBy:      userID,
			CreatedAt:      now,
		})
	}

	return entries
}

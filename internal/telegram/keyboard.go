package telegram

import (
	"fmt"

	"hotelsLookerBot/internal/dialog"
	"hotelsLookerBot/internal/domain/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// callbackPhotoPrefix префикс callback-данных кнопок с количеством фотографий
const callbackPhotoPrefix = "photos:"

// подписи кнопок сортировки
var sortButtonLabels = map[string]string{
	models.SortLowPrice:  "⬇️ цена",
	models.SortHighPrice: "⬆️ цена",
	models.SortBestDeal:  "🔥 лучшая сделка",
}

// sortKeyboard клавиатура пересортировки списка отелей
func sortKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(models.SortMethods))
	for _, method := range models.SortMethods {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(sortButtonLabels[method], method))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// showImageKeyboard кнопки с вариантами количества фотографий
func showImageKeyboard(counts []int) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(counts))
	for _, n := range counts {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d фото", n),
			fmt.Sprintf("%s%d", callbackPhotoPrefix, n),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// menuKeyboard строит клавиатуру по описанию меню, nil если кнопок нет
func menuKeyboard(menu *dialog.Menu) *tgbotapi.InlineKeyboardMarkup {
	if menu == nil {
		return nil
	}
	if menu.Sort {
		kb := sortKeyboard()
		return &kb
	}
	if len(menu.PhotoCounts) > 0 {
		kb := showImageKeyboard(menu.PhotoCounts)
		return &kb
	}
	return nil
}

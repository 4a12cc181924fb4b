package intake

import "strconv"

// Operator-facing messages. The bot talks to a Russian-speaking operator.
const (
	promptStart = "📷 Отправляйте фото и видео товара в любом порядке.\nНажмите 🏁 Finish когда закончите"

	promptMediaOnly = "⚠️ Отправьте фото или видео!"

	promptNoMedia = "❌ Нет медиа для публикации!"

	promptDescriptionEmpty = "⚠️ Введите описание!"

	promptRetailPrice = "💰 Введите розничную цену (сом):"

	promptWholesalePrice = "💰 Введите оптовую цену (сом):"

	promptPriceDigits = "⚠️ Введите число!"

	promptPublished = "✅ Пост опубликован в оба канала!"

	promptPublishFailed = "❌ Ошибка: %v"
)

// mediaAddedText acknowledges a standalone attachment with a running count.
func mediaAddedText(kind string, total int) string {
	return "✅ Добавлено " + kind + ". Всего: " + strconv.Itoa(total)
}

// mediaAcceptedText confirms the collected total when media intake closes.
func mediaAcceptedText(total int) string {
	return "✅ Загружено медиа: " + strconv.Itoa(total) + "\n📝 Введите общее описание для поста:"
}

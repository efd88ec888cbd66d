package handler

import "github.com/line/line-bot-sdk-go/v7/linebot"

// Menu templates. Actions send back plain text, which re-enters the command
// router like any typed message.

func buttonsMenu1() *linebot.TemplateMessage {
	template := linebot.NewButtonsTemplate(
		"", "基本股票功能", "請選擇查詢項目",
		linebot.NewMessageAction("即時股價", "查詢即時開盤價跟收盤價"),
		linebot.NewMessageAction("個股新聞", "新聞"),
		linebot.NewMessageAction("定期定額回測", "回測"),
	)
	return linebot.NewTemplateMessage("基本股票功能選單", template)
}

func buttonsMenu2() *linebot.TemplateMessage {
	template := linebot.NewButtonsTemplate(
		"", "換股功能", "想換股嗎？先做點功課",
		linebot.NewMessageAction("查詢即時股價", "查詢即時開盤價跟收盤價"),
		linebot.NewMessageAction("搜尋相關新聞", "新聞"),
		linebot.NewMessageAction("回測歷史績效", "回測"),
	)
	return linebot.NewTemplateMessage("換股功能選單", template)
}

func catalogCarousel() *linebot.TemplateMessage {
	template := linebot.NewCarouselTemplate(
		linebot.NewCarouselColumn(
			"", "基本股票功能", "股價查詢與定期定額回測",
			linebot.NewMessageAction("即時股價", "查詢即時開盤價跟收盤價"),
			linebot.NewMessageAction("定期定額回測", "回測"),
		),
		linebot.NewCarouselColumn(
			"", "新聞與財報", "關鍵字新聞搜尋與財報選單",
			linebot.NewMessageAction("搜尋新聞", "新聞"),
			linebot.NewMessageAction("財報選單", "財報"),
		),
	)
	return linebot.NewTemplateMessage("功能目錄", template)
}

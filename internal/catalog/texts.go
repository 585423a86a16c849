package catalog

// DemoTexts maps a text_type to a sample passage operators can audition
// voices with before pasting in their own copy.
var DemoTexts = map[string]string{
	"demo":  "歡迎光臨！今天天氣真好，要不要來一杯珍珠奶茶？半糖少冰，外帶還是內用呢？",
	"news":  "各位觀眾晚安，歡迎收看晚間新聞。今天台北市出現難得的冬陽，陽明山上湧入大批賞花人潮。",
	"story": "很久很久以前，在一座靠海的小鎮，住著一位每天清晨都到港邊等船的老奶奶。",
	"ad":    "限時優惠，只到這個週末！全館商品第二件六折，錯過再等一年，心動不如馬上行動！",
}

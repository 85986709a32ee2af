package layout

import (
	"math/rand"
	"strings"
	"unicode"
)

// commonChars is the pool of common ideographs captcha characters are
// sampled from. Kept multi-line for eyeballing; whitespace is stripped at
// package init.
const commonChars = `
	喝同湿冰是鸡果九蒸父菜买饱咸年里兴牛二千百班原口演站孩证筷帽听块学流小家霜亮六老险地有他纸道码累活
	土司卖安我雷渴蔬爱就因花西七木沙右为高假唱阴钱车痛半坐虾秒工衣奶跳心后病结字近饭看干址乐人前多发味
	一女漠黑来束猪闲苹斤北米友危朋草白肉泥男阳好树三明幼笑鸭和她大鼻海舒云时让鞋忙脑饿林甜喜头条护辣每
	外机十动五面能公了蛋快画厨不锅送星说师等春少经写碗煎万笔晴森今酸空勺冬耳要火夏生猫密这以元走洋光角
	零错名欢找眼医视康风会天运炒过日鸟你煮羊舞红歌警理士雪农板书母昨龄杯太份对雨啡分上跑停包真记热水气
	附绿山民狗月习健咖们收服烤酒四难号中哭石东旁始电香钟读南蕉察手者身它死的作拿放盘爬期帮边试开烧苦黄
	河全鱼考冷炸加子在助员八秋做左叉雾吃间躺骑蓝茶
`

var charPool = func() []rune {
	runes := make([]rune, 0, len(commonChars)/3)
	for _, r := range commonChars {
		if !unicode.IsSpace(r) {
			runes = append(runes, r)
		}
	}
	return runes
}()

// randomChar returns one character from the pool.
func randomChar() string {
	return string(charPool[rand.Intn(len(charPool))])
}

// uniqueChars samples count distinct characters from the pool, excluding
// anything already present in taken.
func uniqueChars(count int, taken []string) []string {
	chars := make([]string, 0, count)
	for len(chars) < count {
		c := randomChar()
		if contains(taken, c) || contains(chars, c) {
			continue
		}
		chars = append(chars, c)
	}
	return chars
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// PromptPrefix precedes the joined target characters in the prompt shown
// to the user.
const PromptPrefix = "请依次点击: "

// PromptSeparator joins the target characters in the prompt.
const PromptSeparator = "、"

// BuildPrompt renders the instruction string for a click sequence.
func BuildPrompt(targetChars []string) string {
	return PromptPrefix + strings.Join(targetChars, PromptSeparator)
}

package quote

import "fmt"

const structuredTemplate = `Tạo một câu nói hay và sâu lắng theo yêu cầu sau:

Văn phong: %[1]s
Chủ đề: %[2]s

Yêu cầu:
1. Tạo một câu nói ngắn gọn, súc tích và có ý nghĩa sâu sắc
2. Câu nói phải phù hợp với văn phong "%[1]s" và chủ đề "%[2]s"
3. Câu nói phải có tính triết lý, truyền cảm hứng hoặc khơi gợi suy tư
4. Độ dài từ 10-30 từ
5. Không sử dụng các từ ngữ phản cảm hoặc tiêu cực
6. Tạo ra một câu nói hoàn toàn mới, không copy từ nguồn nào

Trả về kết quả theo format JSON sau:
{
  "vietnamese": "Câu nói tiếng Việt",
  "english": "English quote translation",
  "chinese": "中文翻译"
}

Chỉ trả về JSON object, không thêm bất kỳ text nào khác.`

const textTemplate = `Hãy tạo ra một câu quote (danh ngôn) bằng tiếng Việt sâu sắc và ý nghĩa dựa trên chủ đề hoặc ý tưởng sau: "%s"

Yêu cầu:
- Quote phải ngắn gọn, súc tích (tối đa 2-3 câu)
- Sử dụng ngôn ngữ đẹp, có chiều sâu triết học
- Thể hiện được tinh thần tích cực, động viên
- Phù hợp với văn hóa Việt Nam
- Không sử dụng từ ngữ tiêu cực hay gây tổn thương

Hãy chỉ trả về câu quote, không cần giải thích thêm.`

// BuildPrompt renders req for mode. Style, topic and prompt are embedded
// verbatim.
func BuildPrompt(mode Mode, req Request) string {
	if mode == ModeText {
		return fmt.Sprintf(textTemplate, textSubject(req))
	}
	style, topic := req.Style, req.Topic
	if style == "" && topic == "" {
		// a bare prompt in structured mode becomes the topic
		style, topic = "tự do", req.Prompt
	}
	return fmt.Sprintf(structuredTemplate, style, topic)
}

func textSubject(req Request) string {
	if req.Prompt != "" {
		return req.Prompt
	}
	return fmt.Sprintf("%s, văn phong %s", req.Topic, req.Style)
}

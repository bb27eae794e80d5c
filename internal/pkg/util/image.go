package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// AvatarMaxDimension 头像归一化后的最长边
const AvatarMaxDimension = 400

// GetSafeContentType 基于文件头嗅探 MIME 类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// NormalizeAvatar 校验字节流确实是可解码的图片，并缩放编码为统一的 PNG。
// 解码失败即视为非法图片
func NormalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = imaging.Fit(img, AvatarMaxDimension, AvatarMaxDimension, imaging.Lanczos)

	var out bytes.Buffer
	if err = imaging.Encode(&out, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return out.Bytes(), nil
}

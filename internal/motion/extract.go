package motion

import (
	"os"
	"path/filepath"
)

// Extract locates the embedded video and validates its box structure.
// Unlike Analyze, extraction is strict: a video range whose boxes do
// not parse is rejected rather than written out.
func Extract(data []byte) (VideoRange, []Anomaly, error) {
	video, anomalies, err := FindVideo(data)
	if err != nil {
		return VideoRange{}, anomalies, err
	}
	if _, err := WalkBoxes(data, video.Offset, video.Offset+video.Length); err != nil {
		return VideoRange{}, anomalies, err
	}
	return video, anomalies, nil
}

// WriteRange writes data[video.Offset:video.Offset+video.Length] to
// destPath atomically: the bytes go to a temp file in the destination
// directory which is renamed into place only on success, so a failure
// partway through leaves no partial output behind.
func WriteRange(data []byte, video VideoRange, destPath string) error {
	if !video.Valid || video.Offset < 0 || video.Offset+video.Length > int64(len(data)) {
		return scanErrorf(ErrorTruncatedVideo, video.Offset, "video range %d+%d outside buffer of %d bytes", video.Offset, video.Length, len(data))
	}
	dir := filepath.Dir(destPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destPath)+".*")
	if err != nil {
		return ioError("creating temp file in "+dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data[video.Offset : video.Offset+video.Length]); err != nil {
		tmp.Close()
		return ioError("writing "+tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return ioError("closing "+tmpPath, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return ioError("renaming "+tmpPath+" to "+destPath, err)
	}
	return nil
}

// ExtractFile extracts the embedded video from srcPath into destPath.
// The returned anomalies describe offset decisions made along the way.
func ExtractFile(srcPath, destPath string) (VideoRange, []Anomaly, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return VideoRange{}, nil, ioError("reading "+srcPath, err)
	}
	video, anomalies, err := Extract(data)
	if err != nil {
		return VideoRange{}, anomalies, err
	}
	if err := WriteRange(data, video, destPath); err != nil {
		return VideoRange{}, anomalies, err
	}
	return video, anomalies, nil
}

// ExtractPhotoFile writes the still-photo portion of srcPath, the bytes
// preceding the video range, to destPath.
func ExtractPhotoFile(srcPath, destPath string) (VideoRange, []Anomaly, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return VideoRange{}, nil, ioError("reading "+srcPath, err)
	}
	video, anomalies, err := Extract(data)
	if err != nil {
		return VideoRange{}, anomalies, err
	}
	photo := VideoRange{Offset: 0, Length: video.Offset, Valid: true}
	if err := WriteRange(data, photo, destPath); err != nil {
		return VideoRange{}, anomalies, err
	}
	return video, anomalies, nil
}

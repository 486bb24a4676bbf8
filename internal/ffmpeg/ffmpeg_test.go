package ffmpeg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/backmassage/resizehelper/internal/config"
	"github.com/backmassage/resizehelper/internal/planner"
	"github.com/backmassage/resizehelper/internal/toolexec/mocks"
)

func testUnit() Unit {
	return Unit{
		Binary: "/opt/homebrew/bin/ffmpeg",
		Input:  "/in/photo.png",
		Output: "/out/800x600px/photo.jpg",
		Recipe: planner.Plan(config.ModeStretch, 800, 600, "white"),
		QScale: 5,
	}
}

func TestBuild(t *testing.T) {
	want := []string{
		"/opt/homebrew/bin/ffmpeg",
		"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-i", "/in/photo.png",
		"-filter_complex", "color=c=white:s=800x600[bg];[0:v]scale=800:600,format=rgba[fg];[bg][fg]overlay=0:0,format=rgb24[out]",
		"-map", "[out]",
		"-frames:v", "1",
		"-q:v", "5",
		"/out/800x600px/photo.jpg",
	}
	assert.Equal(t, want, Build(testUnit()))
}

func TestBuild_PathsWithSpacesStayWhole(t *testing.T) {
	u := testUnit()
	u.Input = "/in/my photo.png"
	u.Output = "/out/800x600px/my photo.jpg"
	args := Build(u)
	assert.Contains(t, args, "/in/my photo.png")
	assert.Equal(t, "/out/800x600px/my photo.jpg", args[len(args)-1])
}

func TestExecute(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvoker(ctrl)

	var got []string
	inv.EXPECT().
		Run(gomock.Any(), "/opt/homebrew/bin/ffmpeg", gomock.Any()).
		DoAndReturn(func(_ context.Context, name string, args ...string) error {
			got = append([]string{name}, args...)
			return nil
		})

	require.NoError(t, Execute(context.Background(), inv, testUnit()))
	assert.Equal(t, Build(testUnit()), got)
}

func TestExecute_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvoker(ctrl)
	boom := errors.New("decode failed")
	inv.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

	assert.ErrorIs(t, Execute(context.Background(), inv, testUnit()), boom)
}

/*
 Copyright 2023 NanaFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package utils

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

// HandleTerminalSignal starts catching SIGINT, SIGTERM and SIGQUIT and
// returns a channel closed on the first of them. A second signal exits the
// process at once. Until it is called the signals keep their default action.
func HandleTerminalSignal() chan struct{} {
	terminalCh := make(chan os.Signal, 2)
	signal.Notify(terminalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	ch := make(chan struct{})

	go func() {
		<-terminalCh
		close(ch)
		<-terminalCh
		os.Exit(2)
	}()

	return ch
}

// HandleUserSignal dumps the stacks of all goroutines on SIGUSR1, useful
// when a long indexing run seems stuck.
func HandleUserSignal() {
	userCh := make(chan os.Signal, 1)
	signal.Notify(userCh, syscall.SIGUSR1)

	go func() {
		for range userCh {
			fmt.Fprintln(os.Stderr, string(goroutineStacks()))
		}
	}()
}

func goroutineStacks() []byte {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, len(buf)*2)
	}
}

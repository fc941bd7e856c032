/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

func onboardingView() Element {
	return centered(widget.NewColumn[Message](
		text("Welcome to Tnet-Dispatcher First onboarding dialog").Size(20),
		muted(" Please select a project."),
		button("Continue").OnPress(ContinueOnboarding{}),
	).Spacing(16).Align(widget.AlignCenter))
}

func onboarding2View() Element {
	return centered(widget.NewColumn[Message](
		text("Welcome to Tnet-Dispatcher").Size(20),
		muted("This is the 2nd onboarding screen."),
		button("Get started").OnPress(FinishOnboarding{}),
	).Spacing(16).Align(widget.AlignCenter))
}
